package state

// Keys under which the persisted session lives in state.yml.
const (
	KeyAuthUser  = "auth.user"
	KeyAuthToken = "auth.token"
	KeyAuthRole  = "auth.role"
)

// Credentials is the persisted slice of the session: it survives process
// restarts until an explicit logout.
type Credentials struct {
	User  string
	Token string
	Role  string
}

// SaveCredentials writes the session credentials in a single state write.
func SaveCredentials(c Credentials) error {
	st, err := Load()
	if err != nil {
		return err
	}

	st[KeyAuthUser] = c.User
	st[KeyAuthToken] = c.Token
	st[KeyAuthRole] = c.Role
	return Save(st)
}

// LoadCredentials reads the persisted session, if any. A missing or partial
// entry yields zero-value credentials, never an authenticated session.
func LoadCredentials() (Credentials, error) {
	st, err := Load()
	if err != nil {
		return Credentials{}, err
	}

	str := func(key string) string {
		if v, ok := st[key].(string); ok {
			return v
		}
		return ""
	}

	return Credentials{
		User:  str(KeyAuthUser),
		Token: str(KeyAuthToken),
		Role:  str(KeyAuthRole),
	}, nil
}

// ClearCredentials removes the persisted session in a single state write.
func ClearCredentials() error {
	st, err := Load()
	if err != nil {
		return err
	}

	delete(st, KeyAuthUser)
	delete(st, KeyAuthToken)
	delete(st, KeyAuthRole)
	return Save(st)
}
