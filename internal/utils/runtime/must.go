package runtime

// Must panics if err is not nil. Only for setup code that cannot continue.
func Must(err error) {
	if err != nil {
		panic(err)
	}
}
