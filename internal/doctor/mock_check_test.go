package doctor

import (
	"github.com/stretchr/testify/mock"
)

// MockCheck is a testify mock of Check with typed expectations.
type MockCheck struct {
	mock.Mock
}

// MockCheck_Expecter builds typed expectations for MockCheck.
type MockCheck_Expecter struct {
	mock *mock.Mock
}

// EXPECT returns the typed expectation builder.
func (_m *MockCheck) EXPECT() *MockCheck_Expecter {
	return &MockCheck_Expecter{mock: &_m.Mock}
}

// Name provides a mock function.
func (_m *MockCheck) Name() string {
	ret := _m.Called()
	if len(ret) == 0 {
		panic("no return value specified for Name")
	}
	return ret.String(0)
}

// MockCheck_Name_Call wraps the Name expectation.
type MockCheck_Name_Call struct {
	*mock.Call
}

// Name expects a call to Name.
func (_e *MockCheck_Expecter) Name() *MockCheck_Name_Call {
	return &MockCheck_Name_Call{Call: _e.mock.On("Name")}
}

// Return sets the value Name returns.
func (_c *MockCheck_Name_Call) Return(name string) *MockCheck_Name_Call {
	_c.Call.Return(name)
	return _c
}

// Category provides a mock function.
func (_m *MockCheck) Category() string {
	ret := _m.Called()
	if len(ret) == 0 {
		panic("no return value specified for Category")
	}
	return ret.String(0)
}

// MockCheck_Category_Call wraps the Category expectation.
type MockCheck_Category_Call struct {
	*mock.Call
}

// Category expects a call to Category.
func (_e *MockCheck_Expecter) Category() *MockCheck_Category_Call {
	return &MockCheck_Category_Call{Call: _e.mock.On("Category")}
}

// Return sets the value Category returns.
func (_c *MockCheck_Category_Call) Return(category string) *MockCheck_Category_Call {
	_c.Call.Return(category)
	return _c
}

// Run provides a mock function.
func (_m *MockCheck) Run() *CheckResult {
	ret := _m.Called()
	if len(ret) == 0 {
		panic("no return value specified for Run")
	}
	result, _ := ret.Get(0).(*CheckResult)
	return result
}

// MockCheck_Run_Call wraps the Run expectation.
type MockCheck_Run_Call struct {
	*mock.Call
}

// Run expects a call to Run.
func (_e *MockCheck_Expecter) Run() *MockCheck_Run_Call {
	return &MockCheck_Run_Call{Call: _e.mock.On("Run")}
}

// Return sets the value Run returns.
func (_c *MockCheck_Run_Call) Return(result *CheckResult) *MockCheck_Run_Call {
	_c.Call.Return(result)
	return _c
}

// NewMockCheck creates a MockCheck whose expectations are asserted when
// the test ends.
func NewMockCheck(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCheck {
	m := &MockCheck{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
