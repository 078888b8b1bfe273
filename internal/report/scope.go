package report

import "gorm.io/gorm"

// departmentScope narrows report queries to a single department. An empty
// value or the literal "all" keeps every department in scope.
func departmentScope(department string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if department == "" || department == "all" {
			return db
		}
		return db.Where("trainers.department = ?", department)
	}
}
