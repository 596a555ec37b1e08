package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"nordlayer-server/models"
	"nordlayer-server/services"

	"github.com/gin-gonic/gin"
)

const orderColumns = `id, customer_name, customer_email, customer_phone, customer_contact,
	alternative_contact, service_id, customer_id, specifications, status, total_price,
	source, notes, delivery_needed, delivery_details, created_at, updated_at`

func scanOrder(row rowScanner) (*models.Order, error) {
	var order models.Order
	var customerEmail, customerPhone, customerContact, alternativeContact sql.NullString
	var customerID sql.NullInt64
	var specifications, notes, deliveryNeeded, deliveryDetails sql.NullString
	var totalPrice sql.NullFloat64
	var createdAt, updatedAt sql.NullString

	err := row.Scan(
		&order.ID, &order.CustomerName, &customerEmail, &customerPhone, &customerContact,
		&alternativeContact, &order.ServiceID, &customerID, &specifications, &order.Status,
		&totalPrice, &order.Source, &notes, &deliveryNeeded, &deliveryDetails,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if customerEmail.Valid {
		order.CustomerEmail = &customerEmail.String
	}
	if customerPhone.Valid {
		order.CustomerPhone = &customerPhone.String
	}
	if customerContact.Valid {
		order.CustomerContact = &customerContact.String
	}
	if alternativeContact.Valid {
		order.AlternativeContact = &alternativeContact.String
	}
	if customerID.Valid {
		order.CustomerID = &customerID.Int64
	}
	if specifications.Valid && specifications.String != "" {
		order.Specifications = json.RawMessage(specifications.String)
	}
	if totalPrice.Valid {
		order.TotalPrice = &totalPrice.Float64
	}
	if notes.Valid {
		order.Notes = &notes.String
	}
	if deliveryNeeded.Valid {
		order.DeliveryNeeded = &deliveryNeeded.String
	}
	if deliveryDetails.Valid {
		order.DeliveryDetails = &deliveryDetails.String
	}
	order.CreatedAt = createdAt.String
	order.UpdatedAt = updatedAt.String
	return &order, nil
}

func loadOrderFiles(orderID int64) []models.OrderFile {
	rows, err := DB.Query(`
		SELECT id, order_id, file_path, original_filename, file_size, file_type, created_at
		FROM order_files WHERE order_id = ?`, orderID)
	if err != nil {
		return nil
	}
	defer rows.Close()

	var files []models.OrderFile
	for rows.Next() {
		var file models.OrderFile
		var fileSize sql.NullInt64
		var fileType, createdAt sql.NullString
		if err := rows.Scan(&file.ID, &file.OrderID, &file.FilePath, &file.OriginalFilename,
			&fileSize, &fileType, &createdAt); err != nil {
			continue
		}
		if fileSize.Valid {
			file.FileSize = &fileSize.Int64
		}
		if fileType.Valid {
			file.FileType = &fileType.String
		}
		file.CreatedAt = createdAt.String
		files = append(files, file)
	}
	return files
}

type orderCreateRequest struct {
	CustomerName       string          `json:"customer_name" binding:"required"`
	CustomerEmail      *string         `json:"customer_email"`
	CustomerPhone      *string         `json:"customer_phone"`
	AlternativeContact *string         `json:"alternative_contact"`
	ServiceID          int64           `json:"service_id" binding:"required"`
	Specifications     json.RawMessage `json:"specifications"`
	Source             string          `json:"source"`
	Notes              *string         `json:"notes"`
	DeliveryNeeded     *string         `json:"delivery_needed"`
	DeliveryDetails    *string         `json:"delivery_details"`
	Files              []struct {
		FilePath         string  `json:"file_path"`
		OriginalFilename string  `json:"original_filename"`
		FileSize         *int64  `json:"file_size"`
		FileType         *string `json:"file_type"`
	} `json:"files"`
}

// CreateOrder accepts a new storefront order. Orders land with status
// "new"; admins are pinged asynchronously so a notifier outage never
// fails the request.
func CreateOrder(c *gin.Context) {
	var req orderCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var serviceName string
	err := DB.QueryRow(`SELECT name FROM services WHERE id = ? AND is_active = 1`, req.ServiceID).Scan(&serviceName)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown or inactive service"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check service"})
		}
		return
	}

	source := req.Source
	if source == "" {
		source = "website"
	}

	var specifications *string
	if len(req.Specifications) > 0 {
		s := string(req.Specifications)
		specifications = &s
	}

	tx, err := DB.Begin()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}

	result, err := tx.Exec(`
		INSERT INTO orders (customer_name, customer_email, customer_phone, alternative_contact,
			service_id, specifications, status, source, notes, delivery_needed, delivery_details)
		VALUES (?, ?, ?, ?, ?, ?, 'new', ?, ?, ?, ?)`,
		req.CustomerName, req.CustomerEmail, req.CustomerPhone, req.AlternativeContact,
		req.ServiceID, specifications, source, req.Notes, req.DeliveryNeeded, req.DeliveryDetails,
	)
	if err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}
	orderID, _ := result.LastInsertId()

	for _, file := range req.Files {
		if _, err := tx.Exec(`
			INSERT INTO order_files (order_id, file_path, original_filename, file_size, file_type)
			VALUES (?, ?, ?, ?, ?)`,
			orderID, file.FilePath, file.OriginalFilename, file.FileSize, file.FileType,
		); err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to attach order files"})
			return
		}
	}

	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}

	row := DB.QueryRow(`SELECT `+orderColumns+` FROM orders WHERE id = ?`, orderID)
	order, err := scanOrder(row)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch created order"})
		return
	}
	order.Files = loadOrderFiles(orderID)

	if services.Notifier != nil {
		go services.Notifier.NotifyNewOrder(order.ID, order.CustomerName, serviceName)
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": order})
}

// GetOrders lists orders for the admin dashboard
func GetOrders(c *gin.Context) {
	statusFilter := c.Query("status")

	query := `SELECT ` + orderColumns + ` FROM orders`
	var args []interface{}
	if statusFilter != "" {
		if !models.ValidOrderStatus(statusFilter) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown order status"})
			return
		}
		query += ` WHERE status = ?`
		args = append(args, statusFilter)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := DB.Query(query, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			continue
		}
		orders = append(orders, *order)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": orders})
}

// GetOrder returns one order with its attached files
func GetOrder(c *gin.Context) {
	orderID := c.Param("id")

	row := DB.QueryRow(`SELECT `+orderColumns+` FROM orders WHERE id = ?`, orderID)
	order, err := scanOrder(row)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
		}
		return
	}
	order.Files = loadOrderFiles(order.ID)

	c.JSON(http.StatusOK, gin.H{"success": true, "data": order})
}

// UpdateOrder changes an order's status, price or notes. A status change
// triggers an admin notification.
func UpdateOrder(c *gin.Context) {
	orderID := c.Param("id")

	var req struct {
		Status     *string  `json:"status"`
		TotalPrice *float64 `json:"total_price"`
		Notes      *string  `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	row := DB.QueryRow(`SELECT `+orderColumns+` FROM orders WHERE id = ?`, orderID)
	order, err := scanOrder(row)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
		}
		return
	}

	oldStatus := order.Status
	if req.Status != nil {
		if !models.ValidOrderStatus(*req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown order status"})
			return
		}
		order.Status = *req.Status
	}
	if req.TotalPrice != nil {
		order.TotalPrice = req.TotalPrice
	}
	if req.Notes != nil {
		order.Notes = req.Notes
	}

	_, err = DB.Exec(`
		UPDATE orders SET status = ?, total_price = ?, notes = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		order.Status, order.TotalPrice, order.Notes, orderID,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
		return
	}

	if services.Notifier != nil && order.Status != oldStatus {
		go services.Notifier.NotifyStatusChange(order.ID, order.CustomerName, oldStatus, order.Status)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": order})
}

// DeleteOrder removes an order and its file records
func DeleteOrder(c *gin.Context) {
	orderID := c.Param("id")

	tx, err := DB.Begin()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete order"})
		return
	}

	if _, err := tx.Exec(`DELETE FROM order_files WHERE order_id = ?`, orderID); err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete order files"})
		return
	}

	result, err := tx.Exec(`DELETE FROM orders WHERE id = ?`, orderID)
	if err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete order"})
		return
	}
	affected, _ := result.RowsAffected()

	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete order"})
		return
	}
	if affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order deleted"})
}
