// cmd/main.go
package main

import (
	"alumni-gateway/app"
)

// @title           Alumni Gateway API
// @version         1.0
// @description     Edge gateway for the alumni platform: authentication filter, token revocation store and reverse proxy.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app.Run()
}
