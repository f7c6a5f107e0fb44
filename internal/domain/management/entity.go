// Package management holds the account, routing profile and quick connect
// listings of the console and validates their add forms.
package management

// Account is a contact-center user account.
type Account struct {
	Email          string `json:"email"`
	Username       string `json:"username"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	UserGroup      string `json:"user_group"`
	RoutingProfile string `json:"routing_profile"`
	QuickConnect   string `json:"quick_connect"`
	Instance       string `json:"instance"`
}

type RoutingProfile struct {
	Name                 string   `json:"name"`
	Description          string   `json:"description"`
	Queues               []string `json:"queues"`
	DefaultOutboundQueue string   `json:"default_outbound_queue"`
}

type QuickConnectType string

const (
	QuickConnectUser  QuickConnectType = "User"
	QuickConnectQueue QuickConnectType = "Queue"
	QuickConnectPhone QuickConnectType = "Phone Number"
)

type QuickConnect struct {
	Name        string           `json:"name"`
	Type        QuickConnectType `json:"type"`
	Destination string           `json:"destination"`
	Description string           `json:"description"`
}

var (
	Roles             = []string{"Admin", "Agent", "Supervisor"}
	Queues            = []string{"BasicQueue", "PremiumQueue", "SupportQueue", "SalesQueue"}
	QuickConnectTypes = []QuickConnectType{QuickConnectUser, QuickConnectQueue, QuickConnectPhone}
)

const (
	MinQueuePriority     = 1
	MaxQueuePriority     = 10
	DefaultQueuePriority = 5
)

// Accounts returns the listed accounts.
func Accounts() []Account {
	return []Account{
		{Email: "agent1@example.com", Username: "agent1", FirstName: "agent1", LastName: "test", UserGroup: "AG1", RoutingProfile: "Agent", QuickConnect: "agent1", Instance: "instance-56a4e02c"},
		{Email: "supervisor1@example.com", Username: "supervisor1", FirstName: "supervisor1", LastName: "test", UserGroup: "AG2", RoutingProfile: "Supervisor", QuickConnect: "supervisor1", Instance: "instance-56a4e02c"},
		{Email: "admin1@example.com", Username: "admin1", FirstName: "admin1", LastName: "test", UserGroup: "AG3", RoutingProfile: "Admin", QuickConnect: "admin1", Instance: "instance-56a4e02c"},
	}
}

func RoutingProfiles() []RoutingProfile {
	return []RoutingProfile{
		{Name: "Default Profile", Description: "Default routing", Queues: []string{"BasicQueue"}, DefaultOutboundQueue: "BasicQueue"},
		{Name: "Sales Profile", Description: "For sales team", Queues: []string{"SalesQueue", "PremiumQueue"}, DefaultOutboundQueue: "SalesQueue"},
		{Name: "Support Profile", Description: "For support team", Queues: []string{"SupportQueue", "BasicQueue"}, DefaultOutboundQueue: "SupportQueue"},
	}
}

func QuickConnects() []QuickConnect {
	return []QuickConnect{
		{Name: "Support", Type: QuickConnectQueue, Destination: "SupportQueue", Description: "Support team"},
		{Name: "Sales Manager", Type: QuickConnectUser, Destination: "supervisor1", Description: "Sales escalations"},
		{Name: "Helpdesk", Type: QuickConnectPhone, Destination: "+1-555-123-4567", Description: "External helpdesk"},
	}
}

// Usernames lists the users a quick connect of type User can target.
func Usernames() []string {
	accounts := Accounts()
	out := make([]string, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, a.Username)
	}
	return out
}
