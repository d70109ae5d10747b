// ABOUTME: Shared fixtures for frames package tests
// ABOUTME: Provides a minimal Cel implementation and timeline builders

package frames

// testCel is a minimal Cel compared by pointer identity
type testCel struct {
	name    string
	opacity float64
	visible bool
}

func newCel(name string) *testCel {
	return &testCel{name: name, opacity: 1, visible: true}
}

func (c *testCel) Name() string            { return c.name }
func (c *testCel) SetName(name string)     { c.name = name }
func (c *testCel) Opacity() float64        { return c.opacity }
func (c *testCel) SetOpacity(o float64)    { c.opacity = o }
func (c *testCel) Visible() bool           { return c.visible }
func (c *testCel) SetVisible(visible bool) { c.visible = visible }

// bind binds cels to frames by index, failing the test setup on a bad index
func bind(t *Timeline, cels map[int]Cel) {
	for i, cel := range cels {
		f, err := t.Get(i)
		if err != nil {
			panic(err)
		}

		f.BindCel(cel)
	}
}

// setKeys marks the given frame indices as key frames
func setKeys(t *Timeline, indices ...int) {
	for _, i := range indices {
		f, err := t.Get(i)
		if err != nil {
			panic(err)
		}

		f.SetKey()
	}
}

// onlyNextPrev returns overrides that leave only the immediate cels active
func onlyNextPrev() map[Category]bool {
	return map[Category]bool{
		NextPrev:   true,
		Key:        false,
		Inbetweens: false,
		OtherKeys:  false,
		Other:      false,
	}
}
