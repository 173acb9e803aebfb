package main

import "github.com/killallgit/voicenotes-api/cmd"

// @title           Voice Notes API
// @version         1.0.0
// @description     Voice note transcription, note polishing and recording storage API
// @termsOfService  http://swagger.io/terms/
// @contact.name    API Support
// @contact.url     https://github.com/killallgit/voicenotes-api
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8080
// @BasePath        /
// @schemes         http https
func main() {
	cmd.Execute()
}
