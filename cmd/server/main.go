package main

// @title           Tractor Tracker API
// @version         1.0
// @description     Farm labor and payment ledger backend
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token
func main() {
	Execute()
}
