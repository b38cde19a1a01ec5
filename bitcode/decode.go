package bitcode

import (
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/doccorpus/bitcode/internal/bitstream"
	"github.com/wippyai/doccorpus/errors"
	"github.com/wippyai/doccorpus/meta"
)

// DecodeOptions configures a decode.
type DecodeOptions struct {
	// Unit names the container in errors and logs.
	Unit string
	// Version is the schema version the container must declare.
	// Zero means the current Version.
	Version uint64
}

var cursorPool = sync.Pool{
	New: func() any {
		return bitstream.NewCursor(nil)
	},
}

// Decode reads one unit's container and returns its partial entities.
func Decode(data []byte) ([]meta.Info, error) {
	return DecodeWithOptions(data, DecodeOptions{})
}

// DecodeWithOptions reads one unit's container. On any error no entities
// are returned.
func DecodeWithOptions(data []byte, opts DecodeOptions) ([]meta.Info, error) {
	if opts.Version == 0 {
		opts.Version = Version
	}

	c := cursorPool.Get().(*bitstream.Cursor)
	c.Reset(data)
	defer func() {
		c.Reset(nil)
		cursorPool.Put(c)
	}()

	d := &decoder{c: c, version: opts.Version}
	infos, err := d.decode()
	if err != nil {
		if e, ok := errors.As(err); ok && e.Unit == "" {
			e.Unit = opts.Unit
		}
		Logger().Debug("decode failed",
			zap.String("unit", opts.Unit),
			zap.Int("offset", c.Position()),
			zap.Error(err))
		return nil, err
	}
	Logger().Debug("decoded unit",
		zap.String("unit", opts.Unit),
		zap.Int("entities", len(infos)))
	return infos, nil
}

func (d *decoder) decode() ([]meta.Info, error) {
	if err := d.c.ReadSignature(); err != nil {
		return nil, err
	}

	var infos []meta.Info
	for !d.c.AtEnd() {
		start := d.c.Position()
		code, err := d.c.ReadCode()
		if err != nil {
			return nil, err
		}
		if code != bitstream.CodeEnterSubblock {
			return nil, errors.Malformed(start, "expected a block at top level, found code %d", code)
		}
		raw, err := d.c.ReadBlockID()
		if err != nil {
			return nil, err
		}

		switch id := BlockID(raw); id {
		case BlockInfo:
			if err := d.c.SkipBlock(); err != nil {
				return nil, err
			}
		case BlockVersion:
			if err := d.nested(id, d.readVersion); err != nil {
				return nil, err
			}
		case BlockNamespace, BlockRecord, BlockFunction, BlockEnum, BlockTypedef:
			info := newChild(id).(meta.Info)
			if err := d.nested(id, func() error { return d.readBlock(info) }); err != nil {
				return nil, err
			}
			infos = append(infos, info)
		case BlockEnumValue, BlockType, BlockFieldType, BlockMemberType, BlockBaseRecord,
			BlockJavadoc, BlockJavadocList, BlockJavadocNode, BlockReference,
			BlockTemplate, BlockTemplateSpecialization, BlockTemplateParam:
			return nil, errors.InvalidTopLevelBlock(id.String(), start)
		default:
			// newer producers may add blocks
			Logger().Debug("skipping unknown block", zap.Uint32("block", raw), zap.Int("offset", start))
			if err := d.c.SkipBlock(); err != nil {
				return nil, err
			}
		}
	}
	return infos, nil
}

// readVersion checks the version block against the expected version.
func (d *decoder) readVersion() error {
	for {
		start := d.c.Position()
		code, err := d.c.ReadCode()
		if err != nil {
			return err
		}
		switch code {
		case bitstream.CodeEndBlock:
			return nil
		case bitstream.CodeEnterSubblock:
			raw, err := d.c.ReadBlockID()
			if err != nil {
				return err
			}
			return d.skipUnexpected(BlockVersion.String(), BlockID(raw), start)
		case bitstream.CodeUnabbrevRecord:
			rec, err := d.c.ReadRecord()
			if err != nil {
				return err
			}
			if RecordID(rec.ID) != RecordVersion {
				return withOffset(unexpectedRecord(rec, BlockVersion), start)
			}
			if err := needFields(rec, 1); err != nil {
				return withOffset(err, start)
			}
			if got := rec.Fields[0]; got != d.version {
				return withOffset(errors.VersionMismatch(got, d.version), start)
			}
		}
	}
}
