package main

import "ispcrm/internal/app"

// @title           ISP CRM API
// @version         1.0
// @description     Lead, project approval and customer management for an internet service provider.
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
func main() {
	app.Run()
}
