package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ispcrm/internal/models"
)

func TestCan(t *testing.T) {
	for _, action := range []Action{ActionWriteProducts, ActionDecideProjects, ActionViewAllRecords} {
		assert.False(t, Can(models.RoleSales, action), "sales must not hold %s", action)
		assert.True(t, Can(models.RoleManager, action), "manager must hold %s", action)
	}
	assert.False(t, Can(models.RoleManager, Action("unknown")))
	assert.False(t, Can("", ActionWriteProducts))
}

func TestOwnerScope(t *testing.T) {
	assert.Equal(t, 5, OwnerScope(&models.User{ID: 5, Role: models.RoleSales}))
	assert.Equal(t, 0, OwnerScope(&models.User{ID: 5, Role: models.RoleManager}), "managers see everything")
}

func TestCanAccessRecord(t *testing.T) {
	sales := &models.User{ID: 1, Role: models.RoleSales}
	manager := &models.User{ID: 2, Role: models.RoleManager}

	assert.True(t, CanAccessRecord(sales, 1))
	assert.False(t, CanAccessRecord(sales, 2))
	assert.True(t, CanAccessRecord(manager, 1))
	assert.True(t, CanAccessRecord(manager, 99))
}
