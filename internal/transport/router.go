package transport

import (
	"encoding/hex"
	"encoding/json"
	"net/http"
	"time"

	"cosmossdk.io/log"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/holiman/uint256"

	"github.com/tiltlabs/pokerarbiter/internal/card"
	"github.com/tiltlabs/pokerarbiter/internal/handcore"
	"github.com/tiltlabs/pokerarbiter/internal/merkle"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Server is the HTTP+WS front door over an Arbiter, in-process per spec.md
// §1 (no JSON-RPC proxy to an external engine, unlike the teacher's
// callGameEngine bridge in msg_server_perform_action.go).
type Server struct {
	arbiter *handcore.Arbiter
	escrow  handcore.EscrowAdapter
	hub     *Hub
	logger  log.Logger
}

// NewServer returns a Server whose Router serves REST actions at
// /hand/{id}/... and /player/{id}/... (spec.md §6's init_player/init_balance/
// deposit/withdraw actions, served directly against escrow rather than
// through the arbiter, since they precede any hand), plus a WebSocket
// endpoint at /ws/hand/{id},
// grounded in the teacher's x/poker/websocket/handler.go path scheme
// (/ws/game/{gameId}).
func NewServer(arbiter *handcore.Arbiter, escrow handcore.EscrowAdapter, hub *Hub, logger log.Logger) *Server {
	return &Server{arbiter: arbiter, escrow: escrow, hub: hub, logger: logger}
}

// Router builds the gorilla/mux router for this server.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/player/{id}/init", s.handleInitPlayer).Methods(http.MethodPost)
	r.HandleFunc("/player/{id}/balance/init", s.handleInitBalance).Methods(http.MethodPost)
	r.HandleFunc("/player/{id}/balance/deposit", s.handleDeposit).Methods(http.MethodPost)
	r.HandleFunc("/player/{id}/balance/withdraw", s.handleWithdraw).Methods(http.MethodPost)
	r.HandleFunc("/player/{id}/balance", s.handleGetBalance).Methods(http.MethodGet)
	r.HandleFunc("/hand/{id}", s.handleGetHand).Methods(http.MethodGet)
	r.HandleFunc("/hand/{id}/create", s.handleCreateHand).Methods(http.MethodPost)
	r.HandleFunc("/hand/{id}/join", s.handleJoinHand).Methods(http.MethodPost)
	r.HandleFunc("/hand/{id}/bet", s.handleBet).Methods(http.MethodPost)
	r.HandleFunc("/hand/{id}/advance", s.handleAdvance).Methods(http.MethodPost)
	r.HandleFunc("/hand/{id}/reveal-community/step1", s.handleRevealCommunityStep1).Methods(http.MethodPost)
	r.HandleFunc("/hand/{id}/reveal-community/step2", s.handleRevealCommunityStep2).Methods(http.MethodPost)
	r.HandleFunc("/hand/{id}/reveal-hand", s.handleRevealHand).Methods(http.MethodPost)
	r.HandleFunc("/hand/{id}/claim-timeout", s.handleClaimTimeout).Methods(http.MethodPost)
	r.HandleFunc("/ws/hand/{id}", s.handleWebSocket).Methods(http.MethodGet)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok","service":"pokerarbiter"}`))
}

// handleInitPlayer serves spec.md §6's init_player action.
func (s *Server) handleInitPlayer(w http.ResponseWriter, r *http.Request) {
	pid := common.HexToHash(mux.Vars(r)["id"])
	if err := s.escrow.InitPlayer(pid); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, map[string]string{"status": "ok"})
}

// handleInitBalance serves spec.md §6's init_balance action.
func (s *Server) handleInitBalance(w http.ResponseWriter, r *http.Request) {
	pid := common.HexToHash(mux.Vars(r)["id"])
	if err := s.escrow.InitBalance(pid); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, map[string]string{"status": "ok"})
}

type amountRequest struct {
	Amount uint64 `json:"amount"`
}

// handleDeposit serves spec.md §6's deposit action.
func (s *Server) handleDeposit(w http.ResponseWriter, r *http.Request) {
	pid := common.HexToHash(mux.Vars(r)["id"])
	var req amountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := s.escrow.Deposit(pid, req.Amount); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	bal, err := s.escrow.Balance(pid)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]uint64{"balance": bal})
}

// handleWithdraw serves spec.md §6's withdraw action (requires balance >=
// amount, enforced by the escrow adapter).
func (s *Server) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	pid := common.HexToHash(mux.Vars(r)["id"])
	var req amountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := s.escrow.Withdraw(pid, req.Amount); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	bal, err := s.escrow.Balance(pid)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]uint64{"balance": bal})
}

func (s *Server) handleGetBalance(w http.ResponseWriter, r *http.Request) {
	pid := common.HexToHash(mux.Vars(r)["id"])
	bal, err := s.escrow.Balance(pid)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, map[string]uint64{"balance": bal})
}

func (s *Server) handleGetHand(w http.ResponseWriter, r *http.Request) {
	id, err := parseHandID(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	snap, err := s.arbiter.Snapshot(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, snap)
}

type createHandRequest struct {
	P1             string `json:"p1"`
	Stake          uint64 `json:"stake"`
	EphPK1         string `json:"eph_pk_1"`
	DeckMerkleRoot string `json:"deck_merkle_root"`
}

func (s *Server) handleCreateHand(w http.ResponseWriter, r *http.Request) {
	id, err := parseHandID(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var req createHandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	pk1, err := parseUint256(req.EphPK1)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	root, err := parseMerkleRoot(req.DeckMerkleRoot)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h, err := s.arbiter.CreateHand(handcore.CreateHandParams{
		HandID:         id,
		P1:             common.HexToHash(req.P1),
		Stake:          req.Stake,
		EphPK1:         pk1,
		DeckMerkleRoot: root,
		Now:            nowFunc(),
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.publish(id)
	writeJSON(w, h.Stage.String())
}

type joinHandRequest struct {
	P2             string   `json:"p2"`
	EphPK2         string   `json:"eph_pk_2"`
	EncryptedCards []string `json:"encrypted_cards"`
}

func (s *Server) handleJoinHand(w http.ResponseWriter, r *http.Request) {
	id, err := parseHandID(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var req joinHandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	pk2, err := parseUint256(req.EphPK2)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if len(req.EncryptedCards) != handcore.NumEncryptedSlots {
		http.Error(w, "encrypted_cards must have exactly 9 entries", http.StatusBadRequest)
		return
	}
	var encCards [handcore.NumEncryptedSlots]*uint256.Int
	for i, raw := range req.EncryptedCards {
		c, err := parseUint256(raw)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		encCards[i] = c
	}

	h, err := s.arbiter.JoinHand(handcore.JoinHandParams{
		HandID:         id,
		P2:             common.HexToHash(req.P2),
		EphPK2:         pk2,
		EncryptedCards: encCards,
		Now:            nowFunc(),
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.publish(id)
	writeJSON(w, h.Stage.String())
}

type betRequest struct {
	Player string `json:"player"`
	Kind   string `json:"kind"`
	Raise  uint64 `json:"raise,omitempty"`
}

var actionKinds = map[string]handcore.ActionKind{
	"fold":  handcore.Fold,
	"check": handcore.Check,
	"call":  handcore.Call,
	"raise": handcore.Raise,
	"allin": handcore.AllIn,
}

func (s *Server) handleBet(w http.ResponseWriter, r *http.Request) {
	id, err := parseHandID(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var req betRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	kind, ok := actionKinds[req.Kind]
	if !ok {
		http.Error(w, "unknown action kind", http.StatusBadRequest)
		return
	}
	h, err := s.arbiter.Bet(handcore.BetParams{
		HandID: id,
		Player: common.HexToHash(req.Player),
		Kind:   kind,
		Raise:  req.Raise,
		Now:    nowFunc(),
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.publish(id)
	writeJSON(w, h.Stage.String())
}

func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	id, err := parseHandID(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h, err := s.arbiter.AdvanceStreet(id, nowFunc())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.publish(id)
	writeJSON(w, h.Stage.String())
}

type revealCommunityStep1Request struct {
	Player string   `json:"player"`
	Shares []string `json:"shares"`
}

func (s *Server) handleRevealCommunityStep1(w http.ResponseWriter, r *http.Request) {
	id, err := parseHandID(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var req revealCommunityStep1Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	shares, err := parseUint256Slice(req.Shares)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h, err := s.arbiter.RevealCommunityStep1(handcore.RevealCommunityShareParams{
		HandID: id,
		Player: common.HexToHash(req.Player),
		Shares: shares,
		Now:    nowFunc(),
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.publish(id)
	writeJSON(w, h.Stage.String())
}

type revealCommunityStep2Request struct {
	Player     string   `json:"player"`
	Shares     []string `json:"shares"`
	Plaintexts []uint8  `json:"plaintexts"`
}

func (s *Server) handleRevealCommunityStep2(w http.ResponseWriter, r *http.Request) {
	id, err := parseHandID(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var req revealCommunityStep2Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	shares, err := parseUint256Slice(req.Shares)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	plaintexts := make([]card.Card, len(req.Plaintexts))
	for i, v := range req.Plaintexts {
		plaintexts[i] = card.Card(v)
	}
	h, err := s.arbiter.RevealCommunityStep2(handcore.RevealCommunityStep2Params{
		HandID:     id,
		Player:     common.HexToHash(req.Player),
		Shares:     shares,
		Plaintexts: plaintexts,
		Now:        nowFunc(),
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.publish(id)
	writeJSON(w, h.Stage.String())
}

type revealHandRequest struct {
	Player     string   `json:"player"`
	Plaintexts [2]uint8 `json:"plaintexts"`
}

func (s *Server) handleRevealHand(w http.ResponseWriter, r *http.Request) {
	id, err := parseHandID(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var req revealHandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	h, err := s.arbiter.RevealHand(handcore.RevealHandParams{
		HandID:     id,
		Player:     common.HexToHash(req.Player),
		Plaintexts: [2]card.Card{card.Card(req.Plaintexts[0]), card.Card(req.Plaintexts[1])},
		Now:        nowFunc(),
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.publish(id)
	writeJSON(w, h.Stage.String())
}

type claimTimeoutRequest struct {
	Claimant string `json:"claimant"`
}

func (s *Server) handleClaimTimeout(w http.ResponseWriter, r *http.Request) {
	id, err := parseHandID(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var req claimTimeoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	h, err := s.arbiter.ClaimTimeout(handcore.ClaimTimeoutParams{
		HandID:   id,
		Claimant: common.HexToHash(req.Claimant),
		Now:      nowFunc(),
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.publish(id)
	writeJSON(w, h.Stage.String())
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	_, err := parseHandID(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "err", err)
		return
	}
	c := newClient(s.hub, conn)
	s.hub.register <- c
	go c.writePump()
	c.readPump()
}

func (s *Server) publish(id handcore.HandID) {
	if snap, err := s.arbiter.Snapshot(id); err == nil {
		s.hub.Publish(snap)
	}
}

func parseHandID(raw string) (handcore.HandID, error) {
	return common.HexToHash(raw), nil
}

func parseUint256(raw string) (*uint256.Int, error) {
	b, err := hex.DecodeString(trimHexPrefix(raw))
	if err != nil {
		return nil, err
	}
	return new(uint256.Int).SetBytes(b), nil
}

func parseUint256Slice(raw []string) ([]*uint256.Int, error) {
	out := make([]*uint256.Int, len(raw))
	for i, s := range raw {
		v, err := parseUint256(s)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func parseMerkleRoot(raw string) (merkle.Hash, error) {
	b, err := hex.DecodeString(trimHexPrefix(raw))
	if err != nil {
		return merkle.Hash{}, err
	}
	var h merkle.Hash
	copy(h[:], b)
	return h, nil
}

func trimHexPrefix(s string) string {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s[2:]
	}
	return s
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// nowFunc returns the current wall-clock time in seconds, the environment
// assumption spec.md §1 requires from the host; overridable in tests.
var nowFunc = func() int64 {
	return time.Now().Unix()
}
