package services

import (
	"testing"

	"github.com/moneefalasali/Shield-Spear/internal/models"
	"github.com/moneefalasali/Shield-Spear/internal/scoring"

	"github.com/stretchr/testify/assert"
)

func TestBotRole(t *testing.T) {
	// the bot always takes the side opposite the player's category
	assert.Equal(t, scoring.RoleDefender, BotRole(&models.Challenge{Category: models.CategoryRed}))
	assert.Equal(t, scoring.RoleAttacker, BotRole(&models.Challenge{Category: models.CategoryBlue}))
	assert.Equal(t, scoring.RoleAttacker, BotRole(&models.Challenge{Category: models.CategoryCoop}))
}
