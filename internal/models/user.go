package models

/*
|--------------------------------------------------------------------------
| STAFF IDENTITY
|--------------------------------------------------------------------------
| Identitas petugas yang terikat pada sebuah sesi
*/
type StaffIdentity struct {
	Username string `json:"username"`
	Name     string `json:"name"`
}

/*
|--------------------------------------------------------------------------
| REQUEST
|--------------------------------------------------------------------------
*/
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

/*
|--------------------------------------------------------------------------
| RESPONSE DTO
|--------------------------------------------------------------------------
*/
type LoginResponse struct {
	Token string        `json:"token"`
	User  StaffIdentity `json:"user"`
}

type MeResponse struct {
	User StaffIdentity `json:"user"`
}
