package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abhayvishwakarma1111/bitezyqr/internal/order/events"
)

func (s *Server) GetOrder(c *gin.Context) {
	view, err := s.orderSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": view})
}

func (s *Server) ListOrderBoard(c *gin.Context) {
	identity, _ := identityFrom(c)
	restaurantID, ok := restaurantScope(c, identity)
	if !ok {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	orders, err := s.orderSvc.ListBoard(c.Request.Context(), restaurantID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (s *Server) AdvanceOrderStatus(c *gin.Context) {
	identity, _ := identityFrom(c)
	restaurantID, ok := restaurantScope(c, identity)
	if !ok {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	order, err := s.orderSvc.AdvanceStatus(c.Request.Context(), restaurantID, c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

// StreamOrderEvents pushes board updates to the kitchen dashboard over
// server-sent events, replaying the recent buffer on connect.
func (s *Server) StreamOrderEvents(c *gin.Context) {
	identity, _ := identityFrom(c)
	restaurantID, ok := restaurantScope(c, identity)
	if !ok {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	subscription, backlog, err := s.orderEvents.Subscribe(restaurantID)
	if err != nil {
		AbortWithError(c, ErrInternal)
		return
	}
	defer subscription.Close()

	writer := c.Writer
	headers := writer.Header()
	headers.Set("Content-Type", "text/event-stream")
	headers.Set("Cache-Control", "no-cache")
	headers.Set("Connection", "keep-alive")
	headers.Set("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	flusher, ok := writer.(http.Flusher)
	if !ok {
		AbortWithError(c, ErrInternal)
		return
	}

	if _, err := io.WriteString(writer, "retry: 2000\n\n"); err != nil {
		return
	}

	for _, event := range backlog {
		if err := writeOrderEvent(writer, event); err != nil {
			return
		}
	}
	flusher.Flush()

	ctx := c.Request.Context()
	heartbeat := time.NewTicker(15 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case event := <-subscription.Events():
			if err := writeOrderEvent(writer, event); err != nil {
				return
			}
			flusher.Flush()
		case <-heartbeat.C:
			if _, err := io.WriteString(writer, ": heartbeat\n\n"); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func writeOrderEvent(w io.Writer, event events.OrderEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, data)
	return err
}
