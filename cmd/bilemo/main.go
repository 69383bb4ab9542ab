// @title           BileMo API
// @version         1.0
// @description     B2B catalogue of mobile phones and multi-tenant user management.
// @BasePath        /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the JWT.
package main

import "github.com/bilemo/bilemo-api/cmd/bilemo/commands"

func main() {
	commands.Execute()
}
