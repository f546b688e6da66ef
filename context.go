package dustfs

// Context is the data a template is rendered against.
type Context map[string]any

// CreateContext adds the replace and toFixed helpers to c and returns it.
// A nil c starts from an empty Context. Keys already present in c are never
// overwritten, so caller-supplied values take precedence.
func CreateContext(c Context) Context {
	if c == nil {
		c = make(Context, 2)
	}
	if _, ok := c[HelperReplace]; !ok {
		c[HelperReplace] = Helper(replaceHelper)
	}
	if _, ok := c[HelperToFixed]; !ok {
		c[HelperToFixed] = Helper(toFixedHelper)
	}
	return c
}
