package models

// Rejection literals for MT103 auxiliary institution fields (F53A/F54A/F57A).
var MT103BlockedAuxiliaryValues = []string{
	"BANQUE DE FRANCE",
	"FW021083459",
}

// MT910BlockedOrderingCode is the F50A identifier code whose messages are dropped.
const MT910BlockedOrderingCode = "BEACCMCX091"

// EmptyCodeMarker is recorded in MissingCodes when a message carries no donor code.
const EmptyCodeMarker = "(empty)"

// Auxiliary SWIFT tags tracked for the MT103 rejection rule.
const (
	TagF53A = "F53A"
	TagF54A = "F54A"
	TagF57A = "F57A"
)

// File permissions
const (
	PermissionDirectory  = 0750
	PermissionReportFile = 0644
)
