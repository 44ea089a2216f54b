package main

import (
	"net/http"
	"time"

	"millflow/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
)

func setupRoutes(r *gin.Engine) {
	r.POST("/register", registerHandler)
	r.POST("/login", loginHandler)
	api := r.Group("/api")
	api.Use(jwtAuthMiddleware())
	api.GET("/me", meHandler)

	api.GET("/orders", listOrdersHandler)
	api.POST("/orders", createOrderHandler)
	api.GET("/orders/:id", getOrderHandler)
	api.DELETE("/orders/:id", deleteOrderHandler)

	api.GET("/mill-inputs", listMillInputsHandler)
	api.POST("/mill-inputs", createMillInputHandler)
	api.DELETE("/mill-inputs/:id", deleteMillInputHandler)

	api.GET("/mill-outputs", listMillOutputsHandler)
	api.POST("/mill-outputs", createMillOutputHandler)
	api.DELETE("/mill-outputs/:id", deleteMillOutputHandler)

	api.GET("/dispatches", listDispatchesHandler)
	api.POST("/dispatches", createDispatchHandler)
	api.DELETE("/dispatches/:id", deleteDispatchHandler)

	api.GET("/qualities", listQualitiesHandler)
	api.GET("/mills", listMillsHandler)
}

// Every response uses the {success, data|message} envelope. Clients treat a
// success=false body at 2xx the same as a non-2xx status.
func respondData(c *gin.Context, data gin.H) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func respondError(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"success": false, "message": msg})
}

func jwtAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || len(authHeader) < 8 || authHeader[:7] != "Bearer " {
			respondError(c, http.StatusUnauthorized, "missing or invalid Authorization header")
			c.Abort()
			return
		}
		tokenString := authHeader[7:]
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrInvalidKeyType
			}
			return jwtSecret, nil
		})
		if err != nil || !token.Valid {
			respondError(c, http.StatusUnauthorized, "invalid token")
			c.Abort()
			return
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			respondError(c, http.StatusUnauthorized, "invalid claims")
			c.Abort()
			return
		}
		username, _ := claims["username"].(string)
		role, _ := claims["role"].(string)
		c.Set("username", username)
		if role != "" {
			c.Set("role", role)
		}
		c.Next()
	}
}

func registerHandler(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := RegisterUser(req.Username, req.Password); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	respondData(c, gin.H{"username": req.Username})
}

func loginHandler(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	user, err := Authenticate(req.Username, req.Password)
	if err != nil {
		respondError(c, http.StatusUnauthorized, err.Error())
		return
	}
	roleName := ""
	if user.RoleID != nil {
		var r models.Role
		if err := db.First(&r, *user.RoleID).Error; err == nil {
			roleName = r.Name
		}
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": user.Username,
		"role":     roleName,
		"exp":      time.Now().Add(time.Hour * 24).Unix(),
	})
	tokenString, err := token.SignedString(jwtSecret)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to generate token")
		return
	}
	respondData(c, gin.H{"token": tokenString})
}

func meHandler(c *gin.Context) {
	usernameVal, _ := c.Get("username")
	if usernameVal == nil {
		respondError(c, http.StatusInternalServerError, "context missing username")
		return
	}
	respondData(c, gin.H{"username": usernameVal.(string)})
}

// parseDate accepts the form's yyyy-mm-dd dates as well as full RFC3339
// timestamps coming back from a reload round-trip.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// requireOrder resolves the orderId query param and verifies the order exists.
func requireOrder(c *gin.Context) (uint, bool) {
	var q struct {
		OrderID uint `form:"orderId" binding:"required"`
	}
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, http.StatusBadRequest, "orderId query parameter required")
		return 0, false
	}
	var cnt int64
	db.Model(&models.Order{}).Where("id = ?", q.OrderID).Count(&cnt)
	if cnt == 0 {
		respondError(c, http.StatusNotFound, "order not found")
		return 0, false
	}
	return q.OrderID, true
}

// orderExists is the create-path variant of requireOrder.
func orderExists(c *gin.Context, orderID uint) bool {
	var cnt int64
	db.Model(&models.Order{}).Where("id = ?", orderID).Count(&cnt)
	if cnt == 0 {
		respondError(c, http.StatusBadRequest, "order not found")
		return false
	}
	return true
}

// ---- orders ----

func listOrdersHandler(c *gin.Context) {
	var orders []models.Order
	q := db.Model(&models.Order{})
	if s := c.Query("search"); s != "" {
		like := "%" + s + "%"
		q = q.Where("order_no ILIKE ? OR party_name ILIKE ?", like, like)
	}
	if st := c.Query("status"); st != "" {
		q = q.Where("status = ?", st)
	}
	if err := q.Order("id desc").Limit(200).Find(&orders).Error; err != nil {
		logg.WithError(err).Error("list orders query failed")
		respondError(c, http.StatusInternalServerError, "query failed")
		return
	}
	respondData(c, gin.H{"orders": orders})
}

func createOrderHandler(c *gin.Context) {
	var req struct {
		OrderNo   string `json:"orderNo" binding:"required"`
		PartyName string `json:"partyName" binding:"required"`
		PoNo      string `json:"poNo"`
		PoDate    string `json:"poDate"`
		Quality   string `json:"quality"`
		Status    string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	order := models.Order{OrderNo: req.OrderNo, PartyName: req.PartyName, PoNo: req.PoNo, Quality: req.Quality}
	if req.Status != "" {
		order.Status = req.Status
	}
	if req.PoDate != "" {
		if t, err := parseDate(req.PoDate); err == nil {
			order.PoDate = &t
		}
	}
	if err := db.Create(&order).Error; err != nil {
		if isUniqueConstraintError(err) {
			respondError(c, http.StatusConflict, "order number already exists")
			return
		}
		logg.WithError(err).Error("create order failed")
		respondError(c, http.StatusInternalServerError, "create failed")
		return
	}
	respondData(c, gin.H{"order": order})
}

func getOrderHandler(c *gin.Context) {
	var order models.Order
	if err := db.First(&order, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "order not found")
		return
	}
	respondData(c, gin.H{"order": order})
}

// deleteOrderHandler removes the order together with its transaction rows.
func deleteOrderHandler(c *gin.Context) {
	var order models.Order
	if err := db.First(&order, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "order not found")
		return
	}
	db.Where("order_id = ?", order.ID).Delete(&models.MillInput{})
	db.Where("order_id = ?", order.ID).Delete(&models.MillOutput{})
	db.Where("order_id = ?", order.ID).Delete(&models.Dispatch{})
	if err := db.Delete(&order).Error; err != nil {
		logg.WithError(err).Error("delete order failed")
		respondError(c, http.StatusInternalServerError, "delete failed")
		return
	}
	respondData(c, gin.H{"deleted": order.ID})
}

// ---- mill inputs ----

func listMillInputsHandler(c *gin.Context) {
	orderID, ok := requireOrder(c)
	if !ok {
		return
	}
	var items []models.MillInput
	// created_at ascending keeps the first-created row of each chalan group
	// first; the client grouping depends on this ordering.
	if err := db.Where("order_id = ?", orderID).Order("created_at asc, id asc").Find(&items).Error; err != nil {
		logg.WithError(err).Error("list mill inputs query failed")
		respondError(c, http.StatusInternalServerError, "query failed")
		return
	}
	respondData(c, gin.H{"millInputs": items})
}

func createMillInputHandler(c *gin.Context) {
	var req struct {
		OrderID     uint            `json:"orderId" binding:"required"`
		Mill        string          `json:"mill" binding:"required"`
		ChalanNo    string          `json:"chalanNo" binding:"required"`
		Date        string          `json:"date" binding:"required"`
		GreyMtr     decimal.Decimal `json:"greyMtr"`
		Quality     string          `json:"quality"`
		ProcessName string          `json:"processName"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if !orderExists(c, req.OrderID) {
		return
	}
	if req.GreyMtr.Sign() <= 0 {
		respondError(c, http.StatusBadRequest, "greyMtr must be greater than zero")
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid date")
		return
	}
	item := models.MillInput{
		OrderID:     req.OrderID,
		Mill:        req.Mill,
		ChalanNo:    req.ChalanNo,
		Date:        date,
		GreyMtr:     req.GreyMtr,
		Quality:     req.Quality,
		ProcessName: req.ProcessName,
	}
	if err := db.Create(&item).Error; err != nil {
		logg.WithError(err).Error("create mill input failed")
		respondError(c, http.StatusInternalServerError, "create failed")
		return
	}
	respondData(c, gin.H{"millInput": item})
}

func deleteMillInputHandler(c *gin.Context) {
	res := db.Delete(&models.MillInput{}, c.Param("id"))
	if res.Error != nil {
		logg.WithError(res.Error).Error("delete mill input failed")
		respondError(c, http.StatusInternalServerError, "delete failed")
		return
	}
	if res.RowsAffected == 0 {
		respondError(c, http.StatusNotFound, "not found")
		return
	}
	respondData(c, gin.H{"deleted": c.Param("id")})
}

// ---- mill outputs ----

func listMillOutputsHandler(c *gin.Context) {
	orderID, ok := requireOrder(c)
	if !ok {
		return
	}
	var items []models.MillOutput
	if err := db.Where("order_id = ?", orderID).Order("created_at asc, id asc").Find(&items).Error; err != nil {
		logg.WithError(err).Error("list mill outputs query failed")
		respondError(c, http.StatusInternalServerError, "query failed")
		return
	}
	respondData(c, gin.H{"millOutputs": items})
}

func createMillOutputHandler(c *gin.Context) {
	var req struct {
		OrderID     uint            `json:"orderId" binding:"required"`
		MillBillNo  string          `json:"millBillNo" binding:"required"`
		RecdDate    string          `json:"recdDate" binding:"required"`
		FinishMtr   decimal.Decimal `json:"finishMtr"`
		Quality     string          `json:"quality"`
		ProcessName string          `json:"processName"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if !orderExists(c, req.OrderID) {
		return
	}
	if req.FinishMtr.Sign() <= 0 {
		respondError(c, http.StatusBadRequest, "finishMtr must be greater than zero")
		return
	}
	date, err := parseDate(req.RecdDate)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid recdDate")
		return
	}
	item := models.MillOutput{
		OrderID:     req.OrderID,
		MillBillNo:  req.MillBillNo,
		RecdDate:    date,
		FinishMtr:   req.FinishMtr,
		Quality:     req.Quality,
		ProcessName: req.ProcessName,
	}
	if err := db.Create(&item).Error; err != nil {
		logg.WithError(err).Error("create mill output failed")
		respondError(c, http.StatusInternalServerError, "create failed")
		return
	}
	respondData(c, gin.H{"millOutput": item})
}

func deleteMillOutputHandler(c *gin.Context) {
	res := db.Delete(&models.MillOutput{}, c.Param("id"))
	if res.Error != nil {
		logg.WithError(res.Error).Error("delete mill output failed")
		respondError(c, http.StatusInternalServerError, "delete failed")
		return
	}
	if res.RowsAffected == 0 {
		respondError(c, http.StatusNotFound, "not found")
		return
	}
	respondData(c, gin.H{"deleted": c.Param("id")})
}

// ---- dispatches ----

func listDispatchesHandler(c *gin.Context) {
	orderID, ok := requireOrder(c)
	if !ok {
		return
	}
	var items []models.Dispatch
	if err := db.Where("order_id = ?", orderID).Order("created_at asc, id asc").Find(&items).Error; err != nil {
		logg.WithError(err).Error("list dispatches query failed")
		respondError(c, http.StatusInternalServerError, "query failed")
		return
	}
	respondData(c, gin.H{"dispatches": items})
}

func createDispatchHandler(c *gin.Context) {
	var req struct {
		OrderID uint            `json:"orderId" binding:"required"`
		BillNo  string          `json:"billNo" binding:"required"`
		Date    string          `json:"date" binding:"required"`
		Mtr     decimal.Decimal `json:"mtr"`
		Quality string          `json:"quality"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if !orderExists(c, req.OrderID) {
		return
	}
	if req.Mtr.Sign() <= 0 {
		respondError(c, http.StatusBadRequest, "mtr must be greater than zero")
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid date")
		return
	}
	item := models.Dispatch{
		OrderID: req.OrderID,
		BillNo:  req.BillNo,
		Date:    date,
		Mtr:     req.Mtr,
		Quality: req.Quality,
	}
	if err := db.Create(&item).Error; err != nil {
		logg.WithError(err).Error("create dispatch failed")
		respondError(c, http.StatusInternalServerError, "create failed")
		return
	}
	respondData(c, gin.H{"dispatch": item})
}

func deleteDispatchHandler(c *gin.Context) {
	res := db.Delete(&models.Dispatch{}, c.Param("id"))
	if res.Error != nil {
		logg.WithError(res.Error).Error("delete dispatch failed")
		respondError(c, http.StatusInternalServerError, "delete failed")
		return
	}
	if res.RowsAffected == 0 {
		respondError(c, http.StatusNotFound, "not found")
		return
	}
	respondData(c, gin.H{"deleted": c.Param("id")})
}

// ---- lookups ----

func listQualitiesHandler(c *gin.Context) {
	var items []models.Quality
	if err := db.Order("name asc").Find(&items).Error; err != nil {
		logg.WithError(err).Error("list qualities query failed")
		respondError(c, http.StatusInternalServerError, "query failed")
		return
	}
	respondData(c, gin.H{"qualities": items})
}

func listMillsHandler(c *gin.Context) {
	var items []models.Mill
	if err := db.Order("name asc").Find(&items).Error; err != nil {
		logg.WithError(err).Error("list mills query failed")
		respondError(c, http.StatusInternalServerError, "query failed")
		return
	}
	respondData(c, gin.H{"mills": items})
}
