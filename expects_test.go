package main

// @generated from exec_test.go

//go:generate go run scripts/gen_expects.go -- exec_test.go expects_test.go

func expectRunIndex(index uint) func(stackTestCase) stackTestCase {
	return func(st stackTestCase) stackTestCase {
		return st.expectIndex(index)
	}
}

func expectRunError(err error) func(stackTestCase) stackTestCase {
	return func(st stackTestCase) stackTestCase {
		return st.expectError(err)
	}
}

func expectRunErrorString(mess string) func(stackTestCase) stackTestCase {
	return func(st stackTestCase) stackTestCase {
		return st.expectErrorString(mess)
	}
}

func expectRunOutput(output string) func(stackTestCase) stackTestCase {
	return func(st stackTestCase) stackTestCase {
		return st.expectOutput(output)
	}
}

func expectRunStack(values ...string) func(stackTestCase) stackTestCase {
	return func(st stackTestCase) stackTestCase {
		return st.expectStack(values...)
	}
}

func expectRunDump(dump string) func(stackTestCase) stackTestCase {
	return func(st stackTestCase) stackTestCase {
		return st.expectDump(dump)
	}
}
