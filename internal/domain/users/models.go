package users

import "hradmin/internal/domain/crud"

type User struct {
	UUID            string  `json:"uuid" db:"uuid"`
	Name            string  `json:"name" db:"name"`
	Email           string  `json:"email" db:"email"`
	DepartmentUUID  *string `json:"department_uuid" db:"department_uuid"`
	DepartmentName  *string `json:"department_name" db:"department_name"`
	DesignationUUID *string `json:"designation_uuid" db:"designation_uuid"`
	DesignationName *string `json:"designation_name" db:"designation_name"`
	Phone           *string `json:"phone" db:"phone"`
	Ext             *string `json:"ext" db:"ext"`
	Status          bool    `json:"status" db:"status"`
	crud.Audit
}

// Input carries the plain password; Prepare replaces it with its bcrypt hash before insert.
type Input struct {
	UUID            string  `json:"uuid" db:"uuid" validate:"required,len=15|len=21"`
	Name            string  `json:"name" db:"name" validate:"required,max=255"`
	Email           string  `json:"email" db:"email" validate:"required,email"`
	Pass            string  `json:"pass" db:"pass" validate:"required,min=4,max=72"`
	DepartmentUUID  *string `json:"department_uuid" db:"department_uuid" validate:"omitempty,len=15|len=21"`
	DesignationUUID *string `json:"designation_uuid" db:"designation_uuid" validate:"omitempty,len=15|len=21"`
	Phone           *string `json:"phone" db:"phone" validate:"omitempty,max=32"`
	Ext             *string `json:"ext" db:"ext" validate:"omitempty,max=16"`
	Status          *bool   `json:"status" db:"status"`
	crud.AuditInput
}

type Patch struct {
	Name            *string `json:"name" db:"name" validate:"omitempty,min=1,max=255"`
	Email           *string `json:"email" db:"email" validate:"omitempty,email"`
	Pass            *string `json:"pass" db:"pass" validate:"omitempty,min=4,max=72"`
	DepartmentUUID  *string `json:"department_uuid" db:"department_uuid" validate:"omitempty,len=15|len=21"`
	DesignationUUID *string `json:"designation_uuid" db:"designation_uuid" validate:"omitempty,len=15|len=21"`
	Phone           *string `json:"phone" db:"phone" validate:"omitempty,max=32"`
	Ext             *string `json:"ext" db:"ext" validate:"omitempty,max=16"`
	Status          *bool   `json:"status" db:"status"`
	crud.AuditPatch
}

type LoginRequest struct {
	Email string `json:"email" validate:"required,email"`
	Pass  string `json:"pass" validate:"required"`
	// OTP is required once the account has two-factor login enabled.
	OTP string `json:"otp" validate:"omitempty,len=6,numeric"`
}

type MFASetup struct {
	Secret     string `json:"secret"`
	OTPAuthURL string `json:"otpauth_url"`
}

type MFACodeRequest struct {
	Code string `json:"code" validate:"required,len=6,numeric"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
	User      User   `json:"user"`
}

// Principal is the authenticated caller carried through the request context.
type Principal struct {
	UserUUID string
	Name     string
	Email    string
}
