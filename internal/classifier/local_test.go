package classifier

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"permission-wizard/internal/catalog"
	"permission-wizard/internal/model"
)

func TestClassifyLocal(t *testing.T) {
	tests := []struct {
		name string
		in   Input

		wantLevel      model.RankLevel
		wantConfidence Confidence
	}{
		{
			name:           "name match without audience",
			in:             Input{Name: "VIP+"},
			wantLevel:      model.LevelVIPPlus,
			wantConfidence: ConfidenceMedium,
		},
		{
			name:           "name match agreeing audience",
			in:             Input{Name: "Moderator", TargetAudience: AudienceStaff},
			wantLevel:      model.LevelMod,
			wantConfidence: ConfidenceHigh,
		},
		{
			name:           "name match disagreeing audience",
			in:             Input{Name: "Admin", TargetAudience: AudienceDonor},
			wantLevel:      model.LevelAdmin,
			wantConfidence: ConfidenceMedium,
		},
		{
			name:           "description names a rank",
			in:             Input{Name: "Gold", Description: "A step above vip"},
			wantLevel:      model.LevelVIP,
			wantConfidence: ConfidenceMedium,
		},
		{
			name:           "staff keyword",
			in:             Input{Name: "Guardian", Description: "Can kick and mute people"},
			wantLevel:      model.LevelMod,
			wantConfidence: ConfidenceMedium,
		},
		{
			name:           "staff keyword beats player words",
			in:             Input{Name: "Guardian", Description: "Trusted staff member who can kick and ban"},
			wantLevel:      model.LevelMod,
			wantConfidence: ConfidenceMedium,
		},
		{
			name:           "donor keyword beats player words",
			in:             Input{Name: "Patron", Description: "Premium supporter rank for players who donate"},
			wantLevel:      model.LevelVIP,
			wantConfidence: ConfidenceMedium,
		},
		{
			name:           "player word in description",
			in:             Input{Name: "Gold", Description: "Given to every new member"},
			wantLevel:      model.LevelPlayer,
			wantConfidence: ConfidenceMedium,
		},
		{
			name:           "donor keyword with audience",
			in:             Input{Name: "Gold", Description: "Purchased from the store", TargetAudience: AudienceDonor},
			wantLevel:      model.LevelVIP,
			wantConfidence: ConfidenceHigh,
		},
		{
			name:           "supporter is not staff",
			in:             Input{Name: "Supporter"},
			wantLevel:      model.LevelVIP,
			wantConfidence: ConfidenceMedium,
		},
		{
			name:           "audience only",
			in:             Input{Name: "Gold", TargetAudience: AudienceStaff},
			wantLevel:      model.LevelMod,
			wantConfidence: ConfidenceMedium,
		},
		{
			name:           "nothing matches",
			in:             Input{Name: "Gold"},
			wantLevel:      model.LevelPlayer,
			wantConfidence: ConfidenceLow,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			res := ClassifyLocal(test.in)
			assert.Equal(t, test.wantLevel, res.Level)
			assert.Equal(t, test.wantConfidence, res.Confidence)
			assert.NotEmpty(t, res.Reason)
		})
	}
}

func TestLocal_Classify(t *testing.T) {
	res, err := Local{}.Classify(context.Background(), Input{Name: "Owner"})
	require.NoError(t, err)
	assert.Equal(t, model.LevelOwner, res.Level)
}

func TestCatalogLookup(t *testing.T) {
	lookup := CatalogLookup{Catalog: catalog.Default()}

	for _, name := range []string{"WorldGuard", "worldguard", "World Guard", "world-guard"} {
		res, err := lookup.LookupPluginPermissions(context.Background(), name)
		require.NoError(t, err)
		assert.True(t, res.Found, name)
		assert.Equal(t, "WorldGuard", res.PluginName)
		assert.Equal(t, "catalog", res.Source)
		assert.NotEmpty(t, res.Permissions)
	}

	res, err := lookup.LookupPluginPermissions(context.Background(), "Unheard Of")
	require.NoError(t, err)
	assert.False(t, res.Found)
	assert.Empty(t, res.Permissions)
}
