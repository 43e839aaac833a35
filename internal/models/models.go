package models

type Book struct {
	ID        uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Title     string  `gorm:"size:64" json:"title"`
	Edition   string  `gorm:"size:64" json:"edition"`
	Author    string  `gorm:"size:64;index" json:"author"`
	Publisher string  `gorm:"size:64;index" json:"publisher"`
	Copies    int     `gorm:"not null;default:0" json:"copies"`
	Costs     float64 `json:"costs"`
	Remarks   string  `gorm:"size:256" json:"remarks"`
}

func (Book) TableName() string { return "books" }

type Member struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName   string `gorm:"size:64" json:"first_name"`
	LastName    string `gorm:"size:64" json:"last_name"`
	DateOfBirth Date   `json:"date_of_birth"`
	Gender      string `gorm:"size:16" json:"gender"`
	Mobile      string `gorm:"size:32" json:"mobile"`
	Email       string `gorm:"size:128" json:"email"`
}

func (Member) TableName() string { return "members" }

// LibraryStaff is a staff account. The password hash and salt never leave the
// service.
type LibraryStaff struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName    string `gorm:"size:64" json:"first_name"`
	LastName     string `gorm:"size:64" json:"last_name"`
	Mobile       string `gorm:"size:32" json:"mobile"`
	Email        string `gorm:"size:128;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:256;not null" json:"-"`
	Salt         string `gorm:"size:128;not null" json:"-"`
	Category     string `gorm:"size:128" json:"category"`
}

func (LibraryStaff) TableName() string { return "library_staff" }

// BorrowRecord is one borrow event: a member borrowing books through one
// staff-approved transaction. Deleting the member or the staff account deletes
// the record.
type BorrowRecord struct {
	ID            uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	MemberID      uint         `gorm:"not null;index" json:"member_id"`
	Member        Member       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	StaffID       uint         `gorm:"not null;index" json:"staff_id"`
	Staff         LibraryStaff `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	DateBorrowed  Date         `gorm:"not null" json:"date_borrowed"`
	DueReturnDate Date         `json:"due_return_date"`
}

func (BorrowRecord) TableName() string { return "borrow_records" }

// BorrowRecordDetail links a borrow event to one book.
type BorrowRecordDetail struct {
	ID             uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	BorrowRecordID uint         `gorm:"not null;index" json:"borrow_record_id"`
	BorrowRecord   BorrowRecord `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	BookID         uint         `gorm:"not null;index" json:"book_id"`
	Book           Book         `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	NumberOfCopies int          `gorm:"not null;default:1" json:"number_of_copies"`
}

func (BorrowRecordDetail) TableName() string { return "borrow_record_details" }

type ReturnRecord struct {
	ID             uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	BorrowRecordID uint         `gorm:"not null;index" json:"borrow_record_id"`
	BorrowRecord   BorrowRecord `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	DateReturned   Date         `gorm:"not null" json:"date_returned"`
}

func (ReturnRecord) TableName() string { return "return_records" }

// ReturnRecordDetail links a return event to one book. NumberOfCopies is
// numeric, matching BorrowRecordDetail.
type ReturnRecordDetail struct {
	ID             uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	ReturnRecordID uint         `gorm:"not null;index" json:"return_record_id"`
	ReturnRecord   ReturnRecord `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	BookID         uint         `gorm:"not null;index" json:"book_id"`
	Book           Book         `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	NumberOfCopies int          `gorm:"not null;default:1" json:"number_of_copies"`
}

func (ReturnRecordDetail) TableName() string { return "return_record_details" }

// All lists every model in dependency order, for migrations.
func All() []interface{} {
	return []interface{}{
		&LibraryStaff{},
		&Book{},
		&Member{},
		&BorrowRecord{},
		&BorrowRecordDetail{},
		&ReturnRecord{},
		&ReturnRecordDetail{},
	}
}
