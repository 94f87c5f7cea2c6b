package model

import "github.com/go-openapi/inflect"

// TypeName derives the generated type name from a storage name, e.g.
// "user_accounts" becomes "UserAccounts".
func TypeName(storageName string) string {
	return inflect.Camelize(storageName)
}

// SchemaName derives the validator schema name for a generated type name,
// e.g. "Role" becomes "roleSchema". Enum registrations point columns typed
// with the enum at this name.
func SchemaName(typeName string) string {
	return inflect.CamelizeDownFirst(typeName) + "Schema"
}
