package roster

// Identity is a registered person eligible to clock in and out. Rows are
// written once by Seed and never updated.
type Identity struct {
	ID         string `gorm:"column:id;type:varchar(64);primaryKey"`
	Name       string `gorm:"column:name;type:varchar(255);not null"`
	Department string `gorm:"column:department;type:varchar(100)"`
	Role       string `gorm:"column:role;type:varchar(100)"`
}

func (Identity) TableName() string {
	return "employees"
}
