package directory

// Seed populates the directory with the fixed startup dataset: two teams and
// five employees covering all four roles. Eve's team id ("3") is deliberately
// dangling. Tests rely on these records as fixtures.
func Seed(store *Store) {
	store.PutTeam(Team{ID: "1", Name: "Engineering"})
	store.PutTeam(Team{ID: "2", Name: "Product"})

	store.PutEmployee(Employee{ID: "101", Name: "Alice", Email: "alice@corp.com", TeamID: "1", Role: RoleAdmin})
	store.PutEmployee(Employee{ID: "102", Name: "Bob", Email: "bob@corp.com", TeamID: "1", Role: RoleEmployee})
	store.PutEmployee(Employee{ID: "103", Name: "Charlie", Email: "charlie@corp.com", TeamID: "2", Role: RoleManager})
	store.PutEmployee(Employee{ID: "104", Name: "Diana", Email: "diana@corp.com", TeamID: "2", Role: RoleEmployee})
	store.PutEmployee(Employee{ID: "105", Name: "Eve", Email: "eve@corp.com", TeamID: "3", Role: RoleHR})
}
