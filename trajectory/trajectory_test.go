package trajectory

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"browsebridge/action"
	"browsebridge/observation"
)

func sampleTrajectory(t *testing.T) *Trajectory {
	t.Helper()
	nav, err := NewActionItem(action.NewNavigate("https://example.com"))
	require.NoError(t, err)
	interactive, err := NewActionItem(action.NewInteractive(`click("vid-2")`))
	require.NoError(t, err)

	obs := observation.Normalize(observation.Raw{
		"url":               "https://example.com",
		"text_content":      "Example Domain",
		"active_page_index": 0,
	}, action.TypeBrowse)

	traj := &Trajectory{}
	traj.AddItem(nav)
	traj.AddItems([]TrajectoryItem{
		NewObservationItem(obs),
		interactive,
		NewStepError(errors.New("backend unavailable")),
	})
	return traj
}

func TestNewActionItem(t *testing.T) {
	item, err := NewActionItem(action.NewNavigate("/index.html"))
	require.NoError(t, err)
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, action.TypeBrowse, item.Type)
	assert.Equal(t, "/index.html", item.URL)
	assert.Equal(t, `action: browse(url="/index.html")`, item.GetText())

	act, err := item.Action()
	require.NoError(t, err)
	assert.Equal(t, action.NewNavigate("/index.html"), act)

	var nilNav *action.Navigate
	_, err = NewActionItem(nilNav)
	assert.Error(t, err)
}

func TestInteractiveActionItem(t *testing.T) {
	item, err := NewActionItem(action.NewInteractive("go_back()"))
	require.NoError(t, err)
	assert.Equal(t, `action: browse_interactive(browser_actions="go_back()")`, item.GetText())

	act, err := item.Action()
	require.NoError(t, err)
	assert.Equal(t, action.NewInteractive("go_back()"), act)
}

func TestGetText(t *testing.T) {
	assert.Equal(t, "", (&Trajectory{}).GetText())

	lines := strings.Split(sampleTrajectory(t).GetText(), "\n")
	assert.Equal(t, `action: browse(url="https://example.com")`, lines[0])
	assert.Equal(t, `observation(url="https://example.com", trigger=browse)`, lines[1])
	assert.Equal(t, "Example Domain", lines[2])
	assert.Equal(t, "error: backend unavailable", lines[len(lines)-1])
}

func TestMarshalRoundTrip(t *testing.T) {
	traj := sampleTrajectory(t)
	data, err := MarshalTrajectory(traj)
	require.NoError(t, err)

	decoded, err := UnmarshalTrajectory(data)
	require.NoError(t, err)
	require.Len(t, decoded.Items, 4)

	assert.Equal(t, traj.Items[0], decoded.Items[0])
	assert.Equal(t, traj.Items[2], decoded.Items[2])

	obs, ok := decoded.Items[1].(*ObservationItem)
	require.True(t, ok)
	assert.Equal(t, "Example Domain", obs.Observation.Content)
	assert.Equal(t, 0, obs.Observation.ActivePageIndex)
	assert.Equal(t, action.TypeBrowse, obs.Observation.TriggerByAction)
}

func TestUnknownItemType(t *testing.T) {
	_, err := UnmarshalTrajectory([]byte(`[{"type":"thought","data":{}}]`))
	assert.ErrorContains(t, err, "unknown trajectory item type: thought")
}

func TestLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trajectory.json")
	require.NoError(t, sampleTrajectory(t).Log(path))

	decoded, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, decoded.Items, 4)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
