// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package attrs

import (
	"embed"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

//go:embed testdata/*.yaml
var testDataFS embed.FS

// testSetCase represents a single test case for TestAttrList_Set.
type testSetCase struct {
	Name      string `yaml:"name"`
	Initial   []Attr `yaml:"initial"`
	Value     string `yaml:"value"`
	WantLen   int    `yaml:"wantLen"`
	WantAttrs []Attr `yaml:"wantAttrs"`
}

// testTransformCase represents a single test case for TestAttr_Transform.
type testTransformCase struct {
	Name          string            `yaml:"name"`
	TransformSpec string            `yaml:"transformSpec"`
	Input         interface{}       `yaml:"input"`
	EnvVars       map[string]string `yaml:"envVars"`
	Want          interface{}       `yaml:"want"`
}

// testGlobalTransformCase represents a test case for SetGlobalTransformSpec.
type testGlobalTransformCase struct {
	Name      string   `yaml:"name"`
	Initial   []Attr   `yaml:"initial"`
	WantSpecs []string `yaml:"wantSpecs"`
}

// testStringCase represents a test case for AttrList_String.
type testStringCase struct {
	Name     string `yaml:"name"`
	AttrList []Attr `yaml:"attrList"`
	Want     string `yaml:"want"`
}

// loadTestData loads test data from embedded YAML files.
func loadTestData(filename string, v any) error {
	data, err := testDataFS.ReadFile("testdata/" + filename)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, v)
}

func TestAttrList_Set(t *testing.T) {
	var tests []testSetCase
	err := loadTestData("set_cases.yaml", &tests)
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			a := AttrList(tt.Initial)
			err := a.Set(tt.Value)

			assert.NoError(t, err)
			assert.Len(t, a, tt.WantLen)

			if tt.WantAttrs != nil {
				for i, want := range tt.WantAttrs {
					assert.Equal(t, want.Key, a[i].Key, "attr[%d].Key", i)
					assert.Equal(t, want.OutputKey, a[i].OutputKey, "attr[%d].OutputKey", i)
					assert.Equal(t, want.Include, a[i].Include, "attr[%d].Include", i)
					assert.Equal(t, want.TransformSpec, a[i].TransformSpec, "attr[%d].TransformSpec", i)
				}
			}
		})
	}
}

func TestAttrList_SetGlobalTransformSpec(t *testing.T) {
	var tests []testGlobalTransformCase
	err := loadTestData("global_transform_cases.yaml", &tests)
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			a := AttrList(tt.Initial)
			err := a.SetGlobalTransformSpec()

			assert.NoError(t, err)
			assert.Len(t, a, len(tt.WantSpecs))

			for i, wantSpec := range tt.WantSpecs {
				assert.Equal(t, wantSpec, a[i].TransformSpec, "attr[%d].TransformSpec", i)
			}
		})
	}
}

func TestAttr_Transform(t *testing.T) {
	var tests []testTransformCase
	err := loadTestData("transform_cases.yaml", &tests)
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			for k, v := range tt.EnvVars {
				t.Setenv(k, v)
			}

			a := Attr{TransformSpec: tt.TransformSpec}
			got := a.Transform(tt.Input)
			assert.Equal(t, tt.Want, got)
		})
	}
}

func TestAttrList_String(t *testing.T) {
	var tests []testStringCase
	err := loadTestData("string_cases.yaml", &tests)
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			a := AttrList(tt.AttrList)
			assert.Equal(t, tt.Want, a.String())
		})
	}
}
