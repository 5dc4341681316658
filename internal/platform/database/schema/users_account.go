package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table            string
	ID               string
	Username         string
	Email            string
	Password         string
	Role             string
	IsVerified       string
	VerificationCode string
	VerificationExp  string
	ResetCode        string
	ResetExp         string
	LastLoginAt      string
	DisplayName      string
	AvatarURL        string
	Bio              string
	CreatedAt        string
	UpdatedAt        string
	DeletedAt        string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:            "users.account",
	ID:               "id",
	Username:         "username",
	Email:            "email",
	Password:         "passwordhash",
	Role:             "role",
	IsVerified:       "isverified",
	VerificationCode: "verificationcode",
	VerificationExp:  "verificationcodeexpiresat",
	ResetCode:        "resetcode",
	ResetExp:         "resetcodeexpiresat",
	LastLoginAt:      "lastloginat",
	DisplayName:      "displayname",
	AvatarURL:        "avatarurl",
	Bio:              "bio",
	CreatedAt:        "createdat",
	UpdatedAt:        "updatedat",
	DeletedAt:        "deletedat",
}

// Columns returns all standard column names
func (t UserAccountTable) Columns() []string {
	return []string{
		t.ID, t.Username, t.Email, t.Password, t.Role, t.IsVerified,
		t.VerificationCode, t.VerificationExp, t.ResetCode, t.ResetExp,
		t.LastLoginAt, t.DisplayName, t.AvatarURL, t.Bio,
		t.CreatedAt, t.UpdatedAt, t.DeletedAt,
	}
}
