package handlers

import (
	"net/http"

	"dinedash/statemachine"

	"github.com/gin-gonic/gin"
)

// Health reports that the service is up
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "DineDash Restaurant Management API",
		"version": "1.0.0",
	})
}

// GetStateMachineInfo returns the order lifecycle for informational purposes
func GetStateMachineInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"stateMachine":   statemachine.GetAllTransitions(),
		"terminalStates": statemachine.TerminalStates(),
		"description":    "Restaurant Order Lifecycle State Machine",
	})
}
