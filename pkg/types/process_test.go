package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProcessNodeValidate(t *testing.T) {
	tests := []struct {
		name    string
		node    ProcessNode
		wantErr error
	}{
		{
			name: "valid level-1 root",
			node: ProcessNode{NodeID: "n1", Level: LevelScenario, Name: "Order-to-Cash"},
		},
		{
			name: "valid level-3 with parent and scope code",
			node: ProcessNode{NodeID: "n3", ParentID: "n2", Level: LevelScopeItem, Name: "Sell from Stock", ScopeCode: "BD9"},
		},
		{
			name:    "empty name rejected",
			node:    ProcessNode{NodeID: "n1", Level: LevelScenario},
			wantErr: ErrInvalidName,
		},
		{
			name:    "level zero rejected",
			node:    ProcessNode{NodeID: "n1", Level: 0, Name: "bad"},
			wantErr: ErrInvalidLevel,
		},
		{
			name:    "level five rejected",
			node:    ProcessNode{NodeID: "n1", ParentID: "p", Level: 5, Name: "bad"},
			wantErr: ErrInvalidLevel,
		},
		{
			name:    "root with parent rejected",
			node:    ProcessNode{NodeID: "n1", ParentID: "p", Level: LevelScenario, Name: "bad"},
			wantErr: ErrInvalidData,
		},
		{
			name:    "non-root without parent rejected",
			node:    ProcessNode{NodeID: "n2", Level: LevelProcessGroup, Name: "bad"},
			wantErr: ErrInvalidData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.node.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProcessNodeIsCanonical(t *testing.T) {
	assert.False(t, (&ProcessNode{Level: LevelProcessGroup}).IsCanonical())
	assert.True(t, (&ProcessNode{Level: LevelScopeItem}).IsCanonical())
	assert.False(t, (&ProcessNode{Level: LevelVariant}).IsCanonical())
}
