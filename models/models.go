package models

// All returns every model in migration order
func All() []interface{} {
	return []interface{}{
		&Employee{},
		&Order{},
		&OrderRow{},
		&Payment{},
		&DesignRequest{},
		&DesignPause{},
		&ProspectiveClient{},
		&InventoryItem{},
		&Vendor{},
		&Appointment{},
		&Target{},
		&Interaction{},
		&LoginRecord{},
		&LogoutRecord{},
		&EmployeeUpload{},
	}
}
