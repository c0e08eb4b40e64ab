package api

// Employee is a single employee record as the server stores it. The id is
// server-assigned and absent until the record has been persisted;
// CreatedBy is likewise filled in server-side.
type Employee struct {
	ID         string  `json:"_id,omitempty"`
	Name       string  `json:"name"`
	Position   string  `json:"position,omitempty"`
	Department string  `json:"department,omitempty"`
	Salary     float64 `json:"salary,omitempty"`
	CreatedBy  string  `json:"createdBy,omitempty"`
}

// CreateEmployeeRequest is the payload for creating an employee.
type CreateEmployeeRequest struct {
	Name       string  `json:"name"`
	Position   string  `json:"position,omitempty"`
	Department string  `json:"department,omitempty"`
	Salary     float64 `json:"salary,omitempty"`
}

// UpdateEmployeeRequest is the payload for updating an employee. All
// fields are optional; the server applies what is present.
type UpdateEmployeeRequest struct {
	Name       string  `json:"name,omitempty"`
	Position   string  `json:"position,omitempty"`
	Department string  `json:"department,omitempty"`
	Salary     float64 `json:"salary,omitempty"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse is the body of a successful login.
type AuthResponse struct {
	AccessToken string `json:"accessToken"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// CreateResult reports the id the server assigned to a new employee.
type CreateResult struct {
	InsertedID string `json:"insertedId"`
}

// UpdateResult reports how many records an update touched.
type UpdateResult struct {
	ModifiedCount int `json:"modifiedCount"`
}

// DeleteResult reports how many records a delete removed.
type DeleteResult struct {
	DeletedCount int `json:"deletedCount"`
}
