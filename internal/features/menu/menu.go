// Package menu is the home screen listing the features.
package menu

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/healthkathon/jkb/internal/i18n"
	"github.com/healthkathon/jkb/internal/mvi"
	"github.com/healthkathon/jkb/internal/settings"
)

// Feature ids.
const (
	FeatureFraudDetection = "fraud-detection"
	FeatureChatbot        = "chatbot"
)

// DefaultUserName is shown until a name is stored.
const DefaultUserName = "Admin"

type Item struct {
	ID          string
	Title       string
	Description string
	Emoji       string
	Colors      [2]string
}

type State struct {
	UserName string
	Items    []Item
	// Error is set when the stored user name could not be read.
	Error string
}

type Intent interface{ menuIntent() }

// NavigateToFeature opens the item's feature.
type NavigateToFeature struct{ Item Item }

// NavigateToProfile opens the profile. No screen serves it yet.
type NavigateToProfile struct{}

func (NavigateToFeature) menuIntent() {}
func (NavigateToProfile) menuIntent() {}

func (NavigateToFeature) NavigationIntent() {}
func (NavigateToProfile) NavigationIntent() {}

// Names is the part of the settings store the menu reads.
type Names interface {
	GetString(ctx context.Context, key, def string) (string, error)
}

type Deps struct {
	Names   Names
	Catalog *i18n.Catalog
	Log     *zap.Logger
}

type Container = mvi.Container[State, struct{}]

// Items returns the menu entries in the catalog's language.
func Items(c *i18n.Catalog) []Item {
	return []Item{
		{
			ID:          FeatureFraudDetection,
			Title:       c.T("menu_fraud_title"),
			Description: c.T("menu_fraud_description"),
			Emoji:       "🔍",
			Colors:      [2]string{"#1F4FAB", "#3E68C5"},
		},
		{
			ID:          FeatureChatbot,
			Title:       c.T("menu_chatbot_title"),
			Description: c.T("menu_chatbot_description"),
			Emoji:       "🤖",
			Colors:      [2]string{"#7E368A", "#994FA4"},
		},
	}
}

func New(d Deps, buses mvi.Buses) *Container {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	initial := State{UserName: DefaultUserName, Items: Items(d.Catalog)}
	// Navigation intents need no local work; the bus does the routing.
	failed := func(st State, err error) State {
		st.Error = d.Catalog.Err("menu_user_failed", err)
		return st
	}
	return mvi.New[State, struct{}]("menu", initial, nil, failed, buses,
		mvi.WithLogger[State, struct{}](d.Log),
		mvi.WithOnCreate(func(ctx context.Context, s *mvi.Scope[State, struct{}]) error {
			if d.Names == nil {
				return nil
			}
			name, err := d.Names.GetString(ctx, settings.KeyUserName, DefaultUserName)
			if err != nil {
				return fmt.Errorf("read user name: %w", err)
			}
			if name == "" {
				name = DefaultUserName
			}
			s.Reduce(func(st State) State {
				st.UserName = name
				return st
			})
			return nil
		}),
	)
}
