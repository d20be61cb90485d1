package services

import "focolare/internal/models"

// defaultHouseholdName is used when registration does not name the household.
const defaultHouseholdName = "Famiglia"

// Seed data provisioned for every new household. Names and colors are part of
// the interoperability contract and must not drift.
var defaultWallets = []models.Wallet{
	{Name: "Conto famiglia", Currency: "EUR", IsActive: true},
	{Name: "Carta Claudio", Currency: "EUR", IsActive: true},
	{Name: "Carta Partner", Currency: "EUR", IsActive: true},
	{Name: "Contanti", Currency: "EUR", IsActive: true},
}

var defaultCategories = []models.Category{
	{Name: "Spesa", Type: models.CategoryTypeExpense, Color: "#0ea5e9", IsDefault: true, IsActive: true},
	{Name: "Ristoranti", Type: models.CategoryTypeExpense, Color: "#f97316", IsDefault: true, IsActive: true},
	{Name: "Trasporti", Type: models.CategoryTypeExpense, Color: "#22c55e", IsDefault: true, IsActive: true},
	{Name: "Casa", Type: models.CategoryTypeExpense, Color: "#eab308", IsDefault: true, IsActive: true},
	{Name: "Salute", Type: models.CategoryTypeExpense, Color: "#ef4444", IsDefault: true, IsActive: true},
}
