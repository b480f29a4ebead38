package schemas

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/BerylCAtieno/client-dashboard/internal/dashboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultSnapshot(t *testing.T) dashboard.State {
	t.Helper()
	p, err := dashboard.DefaultProfile()
	require.NoError(t, err)
	return dashboard.NewState(p)
}

func TestValidateSnapshot_FreshState(t *testing.T) {
	data, err := json.Marshal(defaultSnapshot(t))
	require.NoError(t, err)
	assert.NoError(t, ValidateSnapshot(data))
}

func TestValidateSnapshot_EditedState(t *testing.T) {
	s := defaultSnapshot(t)
	cmds := []dashboard.Command{
		dashboard.AddService{},
		dashboard.AddTargetGroup{ServiceID: 2},
		dashboard.UpdateTargetGroup{ServiceID: 2, GroupID: 2, Field: "education", Value: "eğitimsiz"},
		dashboard.AddCompetitor{Competitor: "Acme"},
		dashboard.AddFeature{Feature: "Fiyat"},
		dashboard.UpdateScore{Feature: "Fiyat", Entrant: "Acme", Score: "6"},
		dashboard.AddAttachment{SectionID: "swot", FileName: "swot.pdf", Data: []byte("x")},
	}
	for _, cmd := range cmds {
		var err error
		s, err = dashboard.Apply(s, cmd)
		require.NoError(t, err, cmd.Name())
	}

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.NoError(t, ValidateSnapshot(data))
}

func TestValidateSnapshot_Invalid(t *testing.T) {
	s := defaultSnapshot(t)
	s.Analysis.Goals = nil
	s.Analysis.Sections[0].Status = "done"

	data, err := json.Marshal(s)
	require.NoError(t, err)

	err = ValidateSnapshot(data)
	var ve *ValidationError
	require.True(t, errors.As(err, &ve), "got %v", err)
	assert.GreaterOrEqual(t, len(ve.Errors), 2)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidateSnapshot_NotJSON(t *testing.T) {
	assert.Error(t, ValidateSnapshot([]byte("{")))
}

func TestValidateSnapshot_SeededServices(t *testing.T) {
	p, err := dashboard.ParseProfile([]byte(`
tabs: [analiz]
worksheets:
  services:
    - id: 2
      name: Peyzaj
      targetGroups:
        - {id: 1, education: eğitimli}
        - {id: 4, interests: [bahçe]}
    - id: 5
      name: Restorasyon
`))
	require.NoError(t, err)

	data, err := json.Marshal(dashboard.NewState(p))
	require.NoError(t, err)
	assert.NoError(t, ValidateSnapshot(data))
}
