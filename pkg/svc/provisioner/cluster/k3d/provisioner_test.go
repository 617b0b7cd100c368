package k3dprovisioner_test

import (
	"testing"

	k3dprovisioner "github.com/studytracker/studyctl/pkg/svc/provisioner/cluster/k3d"
	"github.com/stretchr/testify/require"
)

func TestParseClusterNames(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		output   string
		expected []string
		wantErr  bool
	}{
		{
			name:     "empty_output_yields_no_names",
			output:   "",
			expected: nil,
		},
		{
			name:     "single_cluster",
			output:   `[{"name":"study-app-cluster"}]`,
			expected: []string{"study-app-cluster"},
		},
		{
			name:     "multiple_clusters",
			output:   `[{"name":"study-app-cluster"},{"name":"scratch"}]`,
			expected: []string{"study-app-cluster", "scratch"},
		},
		{
			name:     "entries_without_names_are_skipped",
			output:   `[{"name":""},{"name":"scratch"}]`,
			expected: []string{"scratch"},
		},
		{
			name:    "invalid_json",
			output:  "not json",
			wantErr: true,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			names, err := k3dprovisioner.ParseClusterNames(testCase.output)
			if testCase.wantErr {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
			require.Equal(t, testCase.expected, names)
		})
	}
}

func TestAppendConfigFlag(t *testing.T) {
	t.Parallel()

	withConfig := k3dprovisioner.NewProvisioner("/opt/studyctl/k3d-config.yaml")
	require.Equal(
		t,
		[]string{"--config", "/opt/studyctl/k3d-config.yaml"},
		withConfig.AppendConfigFlag(nil),
	)

	withoutConfig := k3dprovisioner.NewProvisioner("")
	require.Nil(t, withoutConfig.AppendConfigFlag(nil))
}

func TestImportImages_NoImagesIsNoOp(t *testing.T) {
	t.Parallel()

	provisioner := k3dprovisioner.NewProvisioner("")

	// No images means no command execution, so this must succeed without
	// a Docker daemon present.
	require.NoError(t, provisioner.ImportImages(t.Context(), "study-app-cluster", nil))
}
