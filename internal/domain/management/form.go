package management

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
)

var (
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrInvalidForm      = errors.New("invalid form")
)

var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 \-]{3,}$`)

type AccountForm struct {
	Username        string `json:"username" form:"username"`
	Email           string `json:"email" form:"email"`
	Role            string `json:"role" form:"role"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
}

func (f AccountForm) Validate() error {
	if strings.TrimSpace(f.Username) == "" {
		return fmt.Errorf("%w: username is required", ErrInvalidForm)
	}
	if !slices.Contains(Roles, f.Role) {
		return fmt.Errorf("%w: unknown role %q", ErrInvalidForm, f.Role)
	}
	if f.Password != f.ConfirmPassword {
		return ErrPasswordMismatch
	}
	return nil
}

// QueuePriority pairs a queue with its routing priority.
type QueuePriority struct {
	Queue    string `json:"queue"`
	Priority int    `json:"priority"`
}

type RoutingProfileForm struct {
	Name        string          `json:"name" form:"name"`
	Description string          `json:"description" form:"description"`
	Queues      []QueuePriority `json:"queues"`
}

func (f RoutingProfileForm) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("%w: profile name is required", ErrInvalidForm)
	}
	seen := make(map[string]struct{}, len(f.Queues))
	for _, q := range f.Queues {
		if !slices.Contains(Queues, q.Queue) {
			return fmt.Errorf("%w: unknown queue %q", ErrInvalidForm, q.Queue)
		}
		if _, dup := seen[q.Queue]; dup {
			return fmt.Errorf("%w: queue %q listed twice", ErrInvalidForm, q.Queue)
		}
		seen[q.Queue] = struct{}{}
		if q.Priority < MinQueuePriority || q.Priority > MaxQueuePriority {
			return fmt.Errorf("%w: priority for %s must be between %d and %d", ErrInvalidForm, q.Queue, MinQueuePriority, MaxQueuePriority)
		}
	}
	return nil
}

type QuickConnectForm struct {
	Name        string `json:"name" form:"name"`
	Type        string `json:"type" form:"type"`
	Destination string `json:"destination" form:"destination"`
	Description string `json:"description" form:"description"`
}

func (f QuickConnectForm) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("%w: quick connect name is required", ErrInvalidForm)
	}
	switch QuickConnectType(f.Type) {
	case QuickConnectUser:
		if !slices.Contains(Usernames(), f.Destination) {
			return fmt.Errorf("%w: unknown user %q", ErrInvalidForm, f.Destination)
		}
	case QuickConnectQueue:
		if !slices.Contains(Queues, f.Destination) {
			return fmt.Errorf("%w: unknown queue %q", ErrInvalidForm, f.Destination)
		}
	case QuickConnectPhone:
		if !phonePattern.MatchString(strings.TrimSpace(f.Destination)) {
			return fmt.Errorf("%w: invalid phone number %q", ErrInvalidForm, f.Destination)
		}
	default:
		return fmt.Errorf("%w: unknown quick connect type %q", ErrInvalidForm, f.Type)
	}
	return nil
}
