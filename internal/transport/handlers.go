package transport

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"regexp"
	"strings"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/gin-gonic/gin"

	"github.com/goodnatureofminers/chaintrace7000-backend/internal/report"
	"github.com/goodnatureofminers/chaintrace7000-backend/internal/service"
)

const maxAddressLength = 100

var runIDPattern = regexp.MustCompile(`^[0-9a-f]{12}$`)

func (s *Server) indexHandle() func(c *gin.Context) {
	return func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
	}
}

func (s *Server) healthHandle() func(c *gin.Context) {
	return func(c *gin.Context) {
		respond(c, gin.H{"status": "healthy"})
	}
}

func (s *Server) analyzeHandle() func(c *gin.Context) {
	return func(c *gin.Context) {
		var req service.AnalyzeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, err)
			return
		}
		if err := validateTxIDs(req.TxIDs); err != nil {
			respondError(c, http.StatusBadRequest, err)
			return
		}

		result, err := s.runner.AnalyzeTxIDs(c.Request.Context(), req)
		if err != nil {
			respondError(c, http.StatusInternalServerError, err)
			return
		}
		respond(c, result)
	}
}

func (s *Server) clusterHandle() func(c *gin.Context) {
	return func(c *gin.Context) {
		var req service.ClusterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, err)
			return
		}
		if err := validateAddress(req.Address); err != nil {
			respondError(c, http.StatusBadRequest, err)
			return
		}

		result, err := s.runner.ClusterFromAddress(c.Request.Context(), req)
		if err != nil {
			respondError(c, http.StatusInternalServerError, err)
			return
		}
		respond(c, result)
	}
}

func (s *Server) peelHandle() func(c *gin.Context) {
	return func(c *gin.Context) {
		var req service.PeelRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, err)
			return
		}
		if err := validateTxID(req.TxID); err != nil {
			respondError(c, http.StatusBadRequest, err)
			return
		}

		result, err := s.runner.Peel(c.Request.Context(), req)
		if err != nil {
			respondError(c, http.StatusInternalServerError, err)
			return
		}
		respond(c, result)
	}
}

func (s *Server) downloadHandle() func(c *gin.Context) {
	return func(c *gin.Context) {
		runID := c.Param("run_id")
		filename := c.Param("filename")

		if !runIDPattern.MatchString(runID) {
			respondError(c, http.StatusBadRequest, errors.New("invalid run id"))
			return
		}
		if !report.IsArtifact(filename) {
			respondError(c, http.StatusBadRequest, errors.New("unknown artifact name"))
			return
		}

		path := s.store.ArtifactPath(runID, filename)
		if _, err := os.Stat(path); err != nil {
			respondError(c, http.StatusNotFound, errors.New("artifact not found"))
			return
		}
		c.FileAttachment(path, filename)
	}
}

func validateTxIDs(txids []string) error {
	nonEmpty := 0
	for _, txid := range txids {
		txid = strings.TrimSpace(txid)
		if txid == "" {
			continue
		}
		if err := validateTxID(txid); err != nil {
			return err
		}
		nonEmpty++
	}
	if nonEmpty == 0 {
		return errors.New("txids required")
	}
	return nil
}

func validateTxID(txid string) error {
	txid = strings.TrimSpace(txid)
	if txid == "" {
		return errors.New("txid required")
	}
	if _, err := chainhash.NewHashFromStr(txid); err != nil {
		return fmt.Errorf("invalid txid %q: %w", txid, err)
	}
	return nil
}

func validateAddress(address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return errors.New("address required")
	}
	if len(address) > maxAddressLength {
		return errors.New("address too long")
	}
	return nil
}
