package main

import (
	"courtside/internal/infra/persistence/model"

	"gorm.io/gen"
)

func main() {
	models := []any{
		model.AdminUserModel{},
		model.PlayerModel{},
		model.AdminCredentialModel{},
		model.PlayerCredentialModel{},
		model.AdminSessionModel{},
		model.PlayerSessionModel{},
	}

	gen := gen.NewGenerator(gen.Config{
		OutPath: "./internal/infra/persistence/postgres/query",
	})

	gen.ApplyBasic(models...)

	gen.Execute()
}
