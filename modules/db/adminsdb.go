package db

// SaveAdmins overwrites the persisted admin set with the given ids.
func SaveAdmins(ids []int64) error {
	return saveIDSet("admins", ids)
}

func LoadAdmins() ([]int64, error) {
	return loadIDSet("admins")
}
