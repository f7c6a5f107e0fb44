package management

import (
	"context"
	"fmt"

	"github.com/photosphere/connect-admin-console/internal/domain/management"
	"github.com/photosphere/connect-admin-console/pkg/snowflake"
	"go.uber.org/zap"
)

// Receipt confirms an accepted form. Nothing is persisted; Reference lets an
// operator find the submission in the logs.
type Receipt struct {
	Reference string `json:"reference"`
	Message   string `json:"message"`
}

type Service struct {
	ids    *snowflake.Node
	logger *zap.Logger
}

func NewService(ids *snowflake.Node, logger *zap.Logger) *Service {
	return &Service{ids: ids, logger: logger.Named("management")}
}

func (s *Service) Accounts() []management.Account { return management.Accounts() }

func (s *Service) RoutingProfiles() []management.RoutingProfile {
	return management.RoutingProfiles()
}

func (s *Service) QuickConnects() []management.QuickConnect { return management.QuickConnects() }

func (s *Service) SubmitAccount(ctx context.Context, form management.AccountForm) (Receipt, error) {
	if err := form.Validate(); err != nil {
		return Receipt{}, err
	}
	return s.accept("account", form.Username, fmt.Sprintf("Account %s saved successfully!", form.Username)), nil
}

func (s *Service) SubmitRoutingProfile(ctx context.Context, form management.RoutingProfileForm) (Receipt, error) {
	if err := form.Validate(); err != nil {
		return Receipt{}, err
	}
	return s.accept("routing_profile", form.Name, fmt.Sprintf("Routing profile %s saved successfully!", form.Name)), nil
}

func (s *Service) SubmitQuickConnect(ctx context.Context, form management.QuickConnectForm) (Receipt, error) {
	if err := form.Validate(); err != nil {
		return Receipt{}, err
	}
	return s.accept("quick_connect", form.Name, fmt.Sprintf("Quick connect %s saved successfully!", form.Name)), nil
}

func (s *Service) accept(kind, name, msg string) Receipt {
	ref := s.ids.GenerateReference()
	s.logger.Info("form_accepted",
		zap.String("kind", kind),
		zap.String("name", name),
		zap.String("reference", ref),
	)
	return Receipt{Reference: ref, Message: msg}
}
