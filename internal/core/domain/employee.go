package domain

// Employee is a team member. Role is a free-text job title, unrelated to the
// session role of CurrentUser.
type Employee struct {
	ID     string `json:"id" bson:"_id"`
	Name   string `json:"name" bson:"name"`
	Role   string `json:"role" bson:"role"`
	Avatar string `json:"avatar" bson:"avatar"`
	Email  string `json:"email" bson:"email"`
}

// Dataset is a full set of collections handed to the store at startup.
type Dataset struct {
	Employees []Employee
	Projects  []Project
	Tasks     []Task
}
