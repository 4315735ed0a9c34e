package intake

func intPtr(v int) *int { return &v }

// DemoPatients is the sample registry loaded when SEED_DEMO is enabled. None
// of them are queued.
func DemoPatients() []Patient {
	return []Patient{
		{ID: "P001", Name: "NAOL MULISA", Age: intPtr(35), Phone: "0912345678", Email: "naol@example.com", Condition: "Fever", Priority: 5},
		{ID: "P002", Name: "SEWYISHAL NETSANET", Age: intPtr(28), Phone: "0912345679", Email: "sewyishal@example.com", Condition: "Chest Pain", IsEmergency: true, Priority: 1},
		{ID: "P003", Name: "Wirtu Borana", Age: intPtr(42), Phone: "0912345680", Email: "wirtu@example.com", Condition: "Headache", Priority: 5},
		{ID: "P004", Name: "YISAKOR TAMIRAT", Age: intPtr(31), Phone: "0912345681", Email: "yisakor@example.com", Condition: "Broken Arm", IsEmergency: true, Priority: 2},
		{ID: "P005", Name: "Surafiel Nigus", Age: intPtr(25), Phone: "0912345682", Email: "surafiel@example.com", Condition: "Cold", Priority: 5},
		{ID: "P006", Name: "Semere Hailu", Age: intPtr(50), Phone: "0912345683", Email: "semere@example.com", Condition: "High Blood Pressure", Priority: 5},
	}
}
