package catalog

import (
	"context"
	"testing"

	"qutlas/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile(t *testing.T) {
	c, err := LoadFile("testdata/catalog.yaml")
	require.NoError(t, err)

	tpl, err := c.GetTemplate(context.Background(), "bracket-l")
	require.NoError(t, err)
	assert.Equal(t, "CNC Milling", tpl.Process)
	assert.Equal(t, 32.0, tpl.BasePrice)
	assert.Equal(t, 1.4, tpl.Materials["Stainless Steel 304"])

	all, err := c.ListTemplates(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "bracket-l", all[0].ID)

	hubs := c.Hubs()
	require.Len(t, hubs, 4)
	assert.Equal(t, "hub-a", hubs[0].ID)
	require.NotNil(t, hubs[0].Location)
	assert.False(t, hubs[3].Certified)
}

func TestGetTemplate_Unknown(t *testing.T) {
	c, err := LoadFile("testdata/catalog.yaml")
	require.NoError(t, err)
	_, err = c.GetTemplate(context.Background(), "nope")
	assert.True(t, errs.Is(err, errs.ErrNotFound))
}

func TestGetTemplate_ReturnsCopy(t *testing.T) {
	c, err := LoadFile("testdata/catalog.yaml")
	require.NoError(t, err)
	tpl, _ := c.GetTemplate(context.Background(), "bracket-l")
	tpl.Materials["Titanium"] = 99

	again, _ := c.GetTemplate(context.Background(), "bracket-l")
	assert.Equal(t, 3.2, again.Materials["Titanium"])
}

func TestParse_Rejects(t *testing.T) {
	cases := map[string]string{
		"unknown key": `
templates:
  - id: a
    process: CNC Milling
    basePrice: 1
    defaultMaterial: Brass
    materials: {Brass: 1}
    colour: red
`,
		"default material missing": `
templates:
  - id: a
    process: CNC Milling
    basePrice: 1
    defaultMaterial: Gold
    materials: {Brass: 1}
`,
		"zero base price": `
templates:
  - id: a
    process: CNC Milling
    basePrice: 0
    defaultMaterial: Brass
    materials: {Brass: 1}
`,
		"duplicate hub": `
hubs:
  - {id: h, processes: [x], materials: [y], qualityRating: 4}
  - {id: h, processes: [x], materials: [y], qualityRating: 4}
`,
		"load out of range": `
hubs:
  - {id: h, currentLoad: 1.5}
`,
		"rating out of range": `
hubs:
  - {id: h, qualityRating: 7}
`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.True(t, errs.Is(err, errs.ErrInvalidInput), "got %v", err)
		})
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile("testdata/does-not-exist.yaml")
	assert.True(t, errs.Is(err, errs.ErrDataUnavailable))
}
