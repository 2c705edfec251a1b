package user

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID        int
	Username  string
	Email     string
	Password  string
	Role      Role
	Firstname *string
	Lastname  *string
	Address   *string
	Phone     *string
}

type RegisterParams struct {
	Username  string
	Email     string
	Password  string
	Firstname *string
	Lastname  *string
}

type UpdateProfileParams struct {
	UserID    int
	Firstname *string
	Lastname  *string
	Address   *string
	Phone     *string
	Email     *string
}
