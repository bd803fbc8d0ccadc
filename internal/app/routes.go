package app

import (
	"github.com/healthkathon/jkb/internal/features/menu"
	"github.com/healthkathon/jkb/internal/features/onboarding"
	"github.com/healthkathon/jkb/internal/features/splash"
	"github.com/healthkathon/jkb/internal/navigation"
)

// Destinations.
const (
	Splash         navigation.Destination = "splash"
	Onboarding     navigation.Destination = "onboarding"
	Menu           navigation.Destination = "menu"
	FraudDetection navigation.Destination = "fraud-detection"
	Chatbot        navigation.Destination = "chatbot"
)

// Retention decides when a destination's container is closed.
type Retention int

const (
	// ScreenScoped containers close when their destination leaves the back stack.
	ScreenScoped Retention = iota
	// AppScoped containers live until the app closes.
	AppScoped
)

var retention = map[navigation.Destination]Retention{
	Splash:         ScreenScoped,
	Onboarding:     ScreenScoped,
	Menu:           ScreenScoped,
	FraudDetection: ScreenScoped,
	Chatbot:        AppScoped,
}

// RetentionOf returns dest's retention. Unknown destinations are screen scoped.
func RetentionOf(dest navigation.Destination) Retention {
	return retention[dest]
}

// Routes returns the navigation handlers in priority order.
func Routes() []navigation.Handler {
	return []navigation.Handler{
		navigation.On("splash-to-onboarding", func(nav navigation.Navigator, _ splash.NavigateToOnboarding) {
			nav.Navigate(Onboarding, navigation.PopUpTo(Splash, true))
		}),
		navigation.On("splash-to-menu", func(nav navigation.Navigator, _ splash.NavigateToMenu) {
			nav.Navigate(Menu, navigation.PopUpTo(Splash, true))
		}),
		navigation.Match("onboarding-to-menu", leavesOnboarding, func(nav navigation.Navigator, _ navigation.Intent) {
			nav.Navigate(Menu, navigation.PopUpTo(Onboarding, true))
		}),
		navigation.On("menu-to-feature", func(nav navigation.Navigator, ev menu.NavigateToFeature) {
			switch ev.Item.ID {
			case menu.FeatureFraudDetection:
				nav.Navigate(FraudDetection, navigation.SingleTop())
			case menu.FeatureChatbot:
				nav.Navigate(Chatbot, navigation.SingleTop())
			}
		}),
		// Claimed so it stops here; there is no profile screen.
		navigation.On("menu-to-profile", func(navigation.Navigator, menu.NavigateToProfile) {}),
	}
}

func leavesOnboarding(ev navigation.Intent) bool {
	switch ev.(type) {
	case onboarding.Skip, onboarding.Complete:
		return true
	}
	return false
}
