package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypePath(t *testing.T) {
	p1 := NewTypePath("MyService")
	assert.Equal(t, "MyService", p1.String())
	assert.Nil(t, p1.Fields())

	p2 := p1.Field("mainService")
	assert.Equal(t, "MyService.mainService", p2.String())

	p3 := p2.Field("logger")
	assert.Equal(t, "MyService.mainService.logger", p3.String())
	assert.Equal(t, []string{"mainService", "logger"}, p3.Fields())

	// Field does not alias the parent path.
	p4 := p2.Field("db")
	assert.Equal(t, "MyService.mainService.logger", p3.String())
	assert.Equal(t, "MyService.mainService.db", p4.String())
}

func TestTypeID_String(t *testing.T) {
	assert.Equal(t, "ctor-generator/store.Order", TypeID{PkgPath: "ctor-generator/store", Name: "Order"}.String())
	assert.Equal(t, "int", TypeID{Name: "int"}.String())
}
