package app

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/korzewski/weave"
	"github.com/korzewski/weave/errors"
)

// Application is the ABCI application running the weave handler stack on
// top of a CommitKVStore.
//
// Errors in ABCI steps that do not take user input (InitChain, Commit)
// cannot be reported back and cause a panic.
type Application struct {
	// mu serializes all calls. ABCI calls arrive one by one already,
	// local callers such as kittyd may not follow that rule.
	mu sync.Mutex

	name        string
	store       *CommitStore
	decoder     weave.TxDecoder
	handler     weave.Handler
	initializer weave.Initializer
	logger      log.Logger
	debug       bool

	chainID string
	// baseContext is valid for the lifetime of the app, blockContext
	// for the current block only.
	baseContext  weave.Context
	blockContext weave.Context
}

var _ abci.Application = (*Application)(nil)

// Config groups the parts an Application is made of.
type Config struct {
	Name        string
	Store       weave.CommitKVStore
	Decoder     weave.TxDecoder
	Handler     weave.Handler
	Initializer weave.Initializer
	Logger      log.Logger
	// Debug returns full error messages with stack traces to clients.
	Debug bool
}

// NewApplication loads the latest state from the store.
func NewApplication(conf Config) (*Application, error) {
	store, err := NewCommitStore(conf.Store)
	if err != nil {
		return nil, err
	}
	logger := conf.Logger
	if logger == nil {
		logger = log.NewNopLogger()
	}
	a := &Application{
		name:        conf.Name,
		store:       store,
		decoder:     conf.Decoder,
		handler:     conf.Handler,
		initializer: conf.Initializer,
		logger:      logger,
		debug:       conf.Debug,
		baseContext: weave.WithLogger(context.Background(), logger),
	}
	chainID, err := loadChainID(store.DeliverStore())
	if err != nil {
		return nil, err
	}
	if chainID != "" {
		a.setChainID(chainID)
	}
	a.blockContext = a.baseContext
	return a, nil
}

func (a *Application) setChainID(chainID string) {
	a.chainID = chainID
	a.baseContext = weave.WithChainID(a.baseContext, chainID)
}

// ChainID returns the chain id set at genesis, empty before.
func (a *Application) ChainID() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.chainID
}

// CommitInfo returns the last committed version.
func (a *Application) CommitInfo() (weave.CommitID, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.store.CommitInfo()
}

// ReadStore returns a read only view of the committed state. The view
// does not follow later commits.
func (a *Application) ReadStore() weave.ReadOnlyKVStore {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.store.committed.CacheWrap()
}

// Info implements abci.Application. It returns the name, height and hash.
func (a *Application) Info(req abci.RequestInfo) abci.ResponseInfo {
	a.mu.Lock()
	defer a.mu.Unlock()

	info, err := a.store.CommitInfo()
	if err != nil {
		panic(err)
	}
	a.logger.Info("Info synced",
		"height", info.Version,
		"hash", fmt.Sprintf("%X", info.Hash))
	return abci.ResponseInfo{
		Data:             a.name,
		LastBlockHeight:  info.Version,
		LastBlockAppHash: info.Hash,
	}
}

// SetOption is not supported.
func (a *Application) SetOption(abci.RequestSetOption) abci.ResponseSetOption {
	return abci.ResponseSetOption{Log: "not implemented"}
}

// Query returns the committed value stored under req.Data. Only the raw
// "/" path is supported, models are decoded by the caller.
func (a *Application) Query(req abci.RequestQuery) abci.ResponseQuery {
	a.mu.Lock()
	defer a.mu.Unlock()

	if req.Path != "/" {
		code, reason := errors.ABCIInfo(errors.Wrapf(errors.ErrNotFound, "query path %q", req.Path), a.debug)
		return abci.ResponseQuery{Code: code, Log: reason}
	}
	info, err := a.store.CommitInfo()
	if err != nil {
		code, reason := errors.ABCIInfo(err, a.debug)
		return abci.ResponseQuery{Code: code, Log: reason}
	}
	value, err := a.store.committed.Get(req.Data)
	if err != nil {
		code, reason := errors.ABCIInfo(err, a.debug)
		return abci.ResponseQuery{Code: code, Log: reason}
	}
	return abci.ResponseQuery{Key: req.Data, Value: value, Height: info.Version}
}

// InitChain stores the chain id and runs the initializer over the
// app_state of the genesis file.
func (a *Application) InitChain(req abci.RequestInitChain) abci.ResponseInitChain {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.initChain(req.ChainId, req.AppStateBytes); err != nil {
		panic(err)
	}
	return abci.ResponseInitChain{}
}

func (a *Application) initChain(chainID string, appState []byte) error {
	if a.chainID != "" {
		return errors.Wrapf(errors.ErrState, "genesis already loaded for %s", a.chainID)
	}
	if len(appState) == 0 {
		return errors.Wrap(errors.ErrEmpty, "app_state not set in genesis")
	}
	var opts weave.Options
	if err := json.Unmarshal(appState, &opts); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	db := a.store.DeliverStore()
	if err := saveChainID(db, chainID); err != nil {
		return err
	}
	a.setChainID(chainID)
	if a.initializer == nil {
		return nil
	}
	return errors.Wrap(a.initializer.FromGenesis(opts, db), "genesis")
}

// BeginBlock sets the block header for all transactions of the block.
func (a *Application) BeginBlock(req abci.RequestBeginBlock) abci.ResponseBeginBlock {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.blockContext = weave.WithHeader(a.baseContext, req.Header)
	return abci.ResponseBeginBlock{}
}

// CheckTx runs the check phase of the handler on the check cache.
func (a *Application) CheckTx(raw []byte) abci.ResponseCheckTx {
	a.mu.Lock()
	defer a.mu.Unlock()

	tx, err := a.loadTx(raw)
	if err != nil {
		return checkTxError(err, a.debug)
	}
	ctx := weave.WithLogInfo(a.blockContext, "call", "check_tx")
	res, err := a.handler.Check(ctx, a.store.CheckStore(), tx)
	if err != nil {
		return checkTxError(err, a.debug)
	}
	return abci.ResponseCheckTx{
		Log:       res.Log,
		GasWanted: res.GasAllocated,
	}
}

// DeliverTx runs the deliver phase of the handler on the deliver cache.
// Events of a successful transaction are returned as tags.
func (a *Application) DeliverTx(raw []byte) abci.ResponseDeliverTx {
	a.mu.Lock()
	defer a.mu.Unlock()

	tx, err := a.loadTx(raw)
	if err != nil {
		return deliverTxError(err, a.debug)
	}
	ctx := weave.WithLogInfo(a.blockContext, "call", "deliver_tx")
	res, err := a.handler.Deliver(ctx, a.store.DeliverStore(), tx)
	if err != nil {
		return deliverTxError(err, a.debug)
	}
	return abci.ResponseDeliverTx{
		Data:    res.Data,
		Log:     res.Log,
		GasUsed: res.GasUsed,
		Tags:    weave.EventTags(res.Events),
	}
}

// EndBlock has nothing to report, the validator set is static.
func (a *Application) EndBlock(abci.RequestEndBlock) abci.ResponseEndBlock {
	return abci.ResponseEndBlock{}
}

// Commit persists the deliver cache.
func (a *Application) Commit() abci.ResponseCommit {
	a.mu.Lock()
	defer a.mu.Unlock()

	id, err := a.store.Commit()
	if err != nil {
		panic(err)
	}
	a.logger.Debug("Commit synced",
		"height", id.Version,
		"hash", fmt.Sprintf("%X", id.Hash))
	a.blockContext = a.baseContext
	return abci.ResponseCommit{Data: id.Hash}
}

// loadTx calls the decoder, and capture any panics
func (a *Application) loadTx(raw []byte) (tx weave.Tx, err error) {
	defer errors.Recover(&err)
	return a.decoder(raw)
}

func checkTxError(err error, debug bool) abci.ResponseCheckTx {
	code, reason := errors.ABCIInfo(err, debug)
	return abci.ResponseCheckTx{Code: code, Log: reason}
}

func deliverTxError(err error, debug bool) abci.ResponseDeliverTx {
	code, reason := errors.ABCIInfo(err, debug)
	return abci.ResponseDeliverTx{Code: code, Log: reason}
}
