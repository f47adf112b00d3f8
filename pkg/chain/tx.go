package chain

import (
	"context"
	"fmt"
	"math/big"

	gaerrors "github.com/cennznet/generic-asset-go/pkg/errors"
	"github.com/centrifuge/go-substrate-rpc-client/v3/signature"
	"github.com/centrifuge/go-substrate-rpc-client/v3/types"
	log "github.com/sirupsen/logrus"
)

// Tx builds an extrinsic for the given call, in the "Module.function" form.
// Every argument is SCALE-encoded, in order, into the call data.
func (a *API) Tx(call string, args ...any) (*Submittable, error) {
	idx, err := a.meta.FindCallIndex(call)
	if err != nil {
		return nil, gaerrors.CALL_NOT_FOUND.Wrap(err).
			WithMetadata(gaerrors.CallMetadata{Call: call})
	}

	data := make([]byte, 0)
	for i, arg := range args {
		buf, err := types.EncodeToBytes(arg)
		if err != nil {
			return nil, gaerrors.ENCODING_FAILED.Wrap(err).
				WithMetadata(gaerrors.EncodingMetadata{Call: call, ArgIndex: i})
		}
		data = append(data, buf...)
	}

	c := types.Call{CallIndex: idx, Args: data}
	return &Submittable{
		api:  a,
		name: call,
		call: c,
		ext:  types.NewExtrinsic(c),
	}, nil
}

// Submittable is an extrinsic ready to be signed and submitted.
type Submittable struct {
	api  *API
	name string
	call types.Call
	ext  types.Extrinsic
}

func (s *Submittable) Name() string {
	return s.name
}

func (s *Submittable) Call() types.Call {
	return s.call
}

func (s *Submittable) Extrinsic() types.Extrinsic {
	return s.ext
}

func (s *Submittable) IsSigned() bool {
	return s.ext.IsSigned()
}

// SignOption customizes the signature of an extrinsic.
type SignOption func(*signOptions)

type signOptions struct {
	nonce *uint32
	tip   *big.Int
}

// WithNonce sets the nonce of the signer. If not given, the next index of the
// signer account is fetched from the node.
func WithNonce(nonce uint32) SignOption {
	return func(o *signOptions) {
		o.nonce = &nonce
	}
}

func WithTip(tip *big.Int) SignOption {
	return func(o *signOptions) {
		o.tip = tip
	}
}

// Sign signs the extrinsic with an immortal era.
func (s *Submittable) Sign(
	ctx context.Context, signer signature.KeyringPair, opts ...SignOption,
) error {
	o := &signOptions{tip: big.NewInt(0)}
	for _, opt := range opts {
		opt(o)
	}
	if o.tip == nil || o.tip.Sign() < 0 {
		return gaerrors.INVALID_AMOUNT.New("invalid tip").
			WithMetadata(gaerrors.AmountMetadata{Amount: fmt.Sprint(o.tip)})
	}

	conn := s.api.conn
	genesisHash, err := conn.GenesisHash(ctx)
	if err != nil {
		return fmt.Errorf("failed to get genesis hash: %w", err)
	}
	rv, err := conn.RuntimeVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to get runtime version: %w", err)
	}

	nonce := uint32(0)
	if o.nonce != nil {
		nonce = *o.nonce
	} else {
		if nonce, err = conn.AccountNextIndex(ctx, signer.Address); err != nil {
			return fmt.Errorf("failed to get nonce of %s: %w", signer.Address, err)
		}
	}

	ext := types.NewExtrinsic(s.call)
	if err := ext.Sign(signer, types.SignatureOptions{
		Era:                types.ExtrinsicEra{IsMortalEra: false},
		Nonce:              types.NewUCompactFromUInt(uint64(nonce)),
		Tip:                types.NewUCompact(o.tip),
		SpecVersion:        rv.SpecVersion,
		GenesisHash:        genesisHash,
		BlockHash:          genesisHash,
		TransactionVersion: rv.TransactionVersion,
	}); err != nil {
		return fmt.Errorf("failed to sign %s: %w", s.name, err)
	}
	s.ext = ext

	log.WithField("call", s.name).
		WithField("signer", signer.Address).
		WithField("nonce", nonce).
		Debug("signed extrinsic")
	return nil
}

// Send submits the signed extrinsic and returns its hash.
func (s *Submittable) Send(ctx context.Context) (types.Hash, error) {
	if !s.IsSigned() {
		return types.Hash{}, fmt.Errorf("extrinsic %s is not signed", s.name)
	}
	hash, err := s.api.conn.SubmitExtrinsic(ctx, s.ext)
	if err != nil {
		return types.Hash{}, fmt.Errorf("failed to submit %s: %w", s.name, err)
	}
	log.WithField("call", s.name).WithField("hash", hash.Hex()).Debug("submitted extrinsic")
	return hash, nil
}

// SendAndWatch submits the signed extrinsic and streams its status updates.
func (s *Submittable) SendAndWatch(
	ctx context.Context,
) (*Subscription[types.ExtrinsicStatus], error) {
	if !s.IsSigned() {
		return nil, fmt.Errorf("extrinsic %s is not signed", s.name)
	}
	sub, err := s.api.conn.SubmitAndWatchExtrinsic(ctx, s.ext)
	if err != nil {
		return nil, fmt.Errorf("failed to submit %s: %w", s.name, err)
	}
	return sub, nil
}
