package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParamName(t *testing.T) {
	tests := []struct {
		field    string
		expected string
	}{
		{"_logger", "logger"},
		{"__repo", "repo"},
		{"a", "a"},
		{"_a", "a"},
		{"Count", "count"},
		{"_URL", "uRL"},
		{"_b_c", "b_c"},
		{"_Ärger", "ärger"},
		{"_1st", "1st"},
		{"___", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParamName(tt.field))
		})
	}
}

func TestIsValidParam(t *testing.T) {
	assert.True(t, IsValidParam("logger"))
	assert.True(t, IsValidParam("uRL"))
	assert.False(t, IsValidParam(""))
	assert.False(t, IsValidParam("_"))
	assert.False(t, IsValidParam("1st"))
	assert.False(t, IsValidParam("type"))
	assert.False(t, IsValidParam("func"))
}

func TestConstructorName(t *testing.T) {
	assert.Equal(t, "NewMyService", ConstructorName("MyService"))
	assert.Equal(t, "newMainService", ConstructorName("mainService"))
	assert.Equal(t, "newX", ConstructorName("x"))
}

func TestSnakeCase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"MyService", "my_service"},
		{"HTTPServer", "http_server"},
		{"HttpServer", "http_server"},
		{"order", "order"},
		{"Order", "order"},
		{"helloController", "hello_controller"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, SnakeCase(tt.input))
		})
	}
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "my_service_ctor.go", FileName("MyService", "_ctor.go", false))
	assert.Equal(t, "order_ctor_test.go", FileName("order", "_ctor.go", true))
}

func TestDisambiguatedFileName(t *testing.T) {
	assert.Equal(t, "http_server_a84eec92_ctor.go", DisambiguatedFileName("HTTPServer", "_ctor.go", false))
	assert.Equal(t, "http_server_4c8f41f2_ctor.go", DisambiguatedFileName("HttpServer", "_ctor.go", false))
	assert.Equal(t, "order_18e78237_ctor.go", DisambiguatedFileName("Order", "_ctor.go", false))
	assert.Equal(t, "order_732c1097_ctor_test.go", DisambiguatedFileName("order", "_ctor.go", true))
}
