package designation

type CreateDesignationRequest struct {
	Name         string `json:"name" binding:"required,max=255"`
	DepartmentID string `json:"department_id" binding:"required,uuid"`
	Description  string `json:"description"`
}

type UpdateDesignationRequest struct {
	Name         string `json:"name" binding:"required,max=255"`
	DepartmentID string `json:"department_id" binding:"required,uuid"`
	Description  string `json:"description"`
}

type GetDesignationsFilterRequest struct {
	DepartmentID string `form:"department_id" binding:"omitempty,uuid"`
}

type DesignationResponse struct {
	ID             string `json:"id"`
	CompanyID      string `json:"company_id"`
	DepartmentID   string `json:"department_id"`
	DepartmentName string `json:"department_name,omitempty"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	CreatedAt      string `json:"created_at,omitempty"`
	UpdatedAt      string `json:"updated_at,omitempty"`
}
