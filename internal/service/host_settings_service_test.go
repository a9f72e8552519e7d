package service

import (
	"context"
	"testing"

	"github.com/RubenLpc/BucovinaStay-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestHostSettingsService_DefaultsAndPatch(t *testing.T) {
	t.Parallel()
	st := newStack(t)
	ctx := context.Background()
	host := st.host(t)

	got, err := st.hostSettings.Get(ctx, host.UserID)
	require.NoError(t, err)
	assert.Equal(t, models.HostNotifications{Messages: true, ListingStatus: true}, got.Notifications)
	assert.Equal(t, models.HostPreferences{Currency: "RON", Locale: "ro-RO", Timezone: "Europe/Bucharest"}, got.Preferences)

	patched, err := st.hostSettings.Patch(ctx, host.UserID, HostSettingsPatch{
		Notifications: &NotificationsPatch{Messages: boolPtr(false), WeeklyReport: boolPtr(true)},
		Preferences:   &PreferencesPatch{Currency: strPtr(" eur "), ReduceMotion: boolPtr(true)},
	})
	require.NoError(t, err)
	assert.Equal(t, models.HostNotifications{Messages: false, ListingStatus: true, WeeklyReport: true}, patched.Notifications)
	assert.Equal(t, "EUR", patched.Preferences.Currency)
	assert.Equal(t, "ro-RO", patched.Preferences.Locale, "omitted fields keep their value")
	assert.True(t, patched.Preferences.ReduceMotion)

	reloaded, err := st.hostSettings.Get(ctx, host.UserID)
	require.NoError(t, err)
	assert.Equal(t, patched.Notifications, reloaded.Notifications)
	assert.Equal(t, patched.Preferences, reloaded.Preferences)
}

func TestHostSettingsService_RejectsInvalidPreferences(t *testing.T) {
	t.Parallel()
	st := newStack(t)
	ctx := context.Background()
	host := st.host(t)

	tests := []struct {
		name  string
		patch PreferencesPatch
	}{
		{"currency", PreferencesPatch{Currency: strPtr("BTC")}},
		{"empty locale", PreferencesPatch{Locale: strPtr("  ")}},
		{"unknown timezone", PreferencesPatch{Timezone: strPtr("Europe/Radauti")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := st.hostSettings.Patch(ctx, host.UserID, HostSettingsPatch{
				Notifications: &NotificationsPatch{Marketing: boolPtr(true)},
				Preferences:   &tt.patch,
			})
			assertAppErrorCode(t, err, models.CodeValidation)
		})
	}

	got, err := st.hostSettings.Get(ctx, host.UserID)
	require.NoError(t, err)
	assert.False(t, got.Notifications.Marketing, "nothing is written when a field is invalid")
}
