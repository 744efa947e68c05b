package model

type Doctor struct {
	Base
	FirstName      string `db:"first_name" json:"first_name"`
	LastName       string `db:"last_name" json:"last_name"`
	Specialization string `db:"specialization" json:"specialization,omitempty"`
	Contact        string `db:"contact" json:"contact"`
	Department     string `db:"department" json:"department,omitempty"`
	Availability   string `db:"availability" json:"availability,omitempty"`
	// Stored in plaintext. Known weakness, kept as-is.
	Password string `db:"password" json:"-"`
}

func (d *Doctor) FullName() string {
	return d.FirstName + " " + d.LastName
}

type CreateDoctorRequest struct {
	FirstName      string `json:"first_name" form:"first_name" binding:"required"`
	LastName       string `json:"last_name" form:"last_name" binding:"required"`
	Specialization string `json:"specialization" form:"specialization"`
	Contact        string `json:"contact" form:"contact" binding:"required"`
	Department     string `json:"department" form:"department"`
	Availability   string `json:"availability" form:"availability"`
	Password       string `json:"password" form:"password" binding:"required"`
}

type UpdateDoctorRequest struct {
	FirstName      *string `json:"first_name" form:"first_name"`
	LastName       *string `json:"last_name" form:"last_name"`
	Specialization *string `json:"specialization" form:"specialization"`
	Contact        *string `json:"contact" form:"contact"`
	Department     *string `json:"department" form:"department"`
	Availability   *string `json:"availability" form:"availability"`
	Password       *string `json:"password" form:"password"`
}
