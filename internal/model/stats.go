package model

// DashboardStats backs the admin dashboard counters.
type DashboardStats struct {
	Patients     int64 `db:"patients" json:"patients"`
	Doctors      int64 `db:"doctors" json:"doctors"`
	Rooms        int64 `db:"rooms" json:"rooms"`
	Bills        int64 `db:"bills" json:"bills"`
	Appointments int64 `db:"appointments" json:"appointments"`
}
