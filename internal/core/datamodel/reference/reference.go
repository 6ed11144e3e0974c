package reference

// Lookup tables share one row shape; TableName distinguishes them.

type UserRole struct {
	ID          int64  `gorm:"primaryKey"`
	Name        string `gorm:"column:name;uniqueIndex;not null"`
	Description string `gorm:"column:description"`
}

func (UserRole) TableName() string { return "user_roles" }

type EmploymentType struct {
	ID          int64  `gorm:"primaryKey"`
	Name        string `gorm:"column:name;uniqueIndex;not null"`
	Description string `gorm:"column:description"`
}

func (EmploymentType) TableName() string { return "employment_types" }

type VacationStatus struct {
	ID          int64  `gorm:"primaryKey"`
	Name        string `gorm:"column:name;uniqueIndex;not null"`
	Description string `gorm:"column:description"`
}

func (VacationStatus) TableName() string { return "vacation_statuses" }

type VacationType struct {
	ID          int64  `gorm:"primaryKey"`
	Name        string `gorm:"column:name;uniqueIndex;not null"`
	Description string `gorm:"column:description"`
}

func (VacationType) TableName() string { return "vacation_types" }
