package cpu

import "github.com/thelolagemann/dmgcore/internal/types"

// Opcodes with an irregular encoding. The regular blocks (LD r, r',
// the 8-bit ALU block, INC/DEC r and LD r, d8) are decoded from
// their register fields instead.
const (
	OpNOP        types.Byte = 0x00
	OpLDBCd16    types.Byte = 0x01
	OpLDBCA      types.Byte = 0x02
	OpINCBC      types.Byte = 0x03
	OpRLCA       types.Byte = 0x07
	OpLDa16SP    types.Byte = 0x08
	OpADDHLBC    types.Byte = 0x09
	OpLDABC      types.Byte = 0x0A
	OpDECBC      types.Byte = 0x0B
	OpRRCA       types.Byte = 0x0F
	OpSTOP       types.Byte = 0x10
	OpLDDEd16    types.Byte = 0x11
	OpLDDEA      types.Byte = 0x12
	OpINCDE      types.Byte = 0x13
	OpRLA        types.Byte = 0x17
	OpJR         types.Byte = 0x18
	OpADDHLDE    types.Byte = 0x19
	OpLDADE      types.Byte = 0x1A
	OpDECDE      types.Byte = 0x1B
	OpRRA        types.Byte = 0x1F
	OpJRNZ       types.Byte = 0x20
	OpLDHLd16    types.Byte = 0x21
	OpLDHLIA     types.Byte = 0x22
	OpINCHL      types.Byte = 0x23
	OpDAA        types.Byte = 0x27
	OpJRZ        types.Byte = 0x28
	OpADDHLHL    types.Byte = 0x29
	OpLDAHLI     types.Byte = 0x2A
	OpDECHL      types.Byte = 0x2B
	OpCPL        types.Byte = 0x2F
	OpJRNC       types.Byte = 0x30
	OpLDSPd16    types.Byte = 0x31
	OpLDHLDA     types.Byte = 0x32
	OpINCSP      types.Byte = 0x33
	OpSCF        types.Byte = 0x37
	OpJRC        types.Byte = 0x38
	OpADDHLSP    types.Byte = 0x39
	OpLDAHLD     types.Byte = 0x3A
	OpDECSP      types.Byte = 0x3B
	OpCCF        types.Byte = 0x3F
	OpHALT       types.Byte = 0x76
	OpRETNZ      types.Byte = 0xC0
	OpPOPBC      types.Byte = 0xC1
	OpJPNZ       types.Byte = 0xC2
	OpJP         types.Byte = 0xC3
	OpCALLNZ     types.Byte = 0xC4
	OpPUSHBC     types.Byte = 0xC5
	OpADDd8      types.Byte = 0xC6
	OpRST00      types.Byte = 0xC7
	OpRETZ       types.Byte = 0xC8
	OpRET        types.Byte = 0xC9
	OpJPZ        types.Byte = 0xCA
	OpPrefixCB   types.Byte = 0xCB
	OpCALLZ      types.Byte = 0xCC
	OpCALL       types.Byte = 0xCD
	OpADCd8      types.Byte = 0xCE
	OpRST08      types.Byte = 0xCF
	OpRETNC      types.Byte = 0xD0
	OpPOPDE      types.Byte = 0xD1
	OpJPNC       types.Byte = 0xD2
	OpCALLNC     types.Byte = 0xD4
	OpPUSHDE     types.Byte = 0xD5
	OpSUBd8      types.Byte = 0xD6
	OpRST10      types.Byte = 0xD7
	OpRETC       types.Byte = 0xD8
	OpRETI       types.Byte = 0xD9
	OpJPC        types.Byte = 0xDA
	OpCALLC      types.Byte = 0xDC
	OpSBCd8      types.Byte = 0xDE
	OpRST18      types.Byte = 0xDF
	OpLDHa8A     types.Byte = 0xE0
	OpPOPHL      types.Byte = 0xE1
	OpLDCA       types.Byte = 0xE2
	OpPUSHHL     types.Byte = 0xE5
	OpANDd8      types.Byte = 0xE6
	OpRST20      types.Byte = 0xE7
	OpADDSPr8    types.Byte = 0xE8
	OpJPHL       types.Byte = 0xE9
	OpLDa16A     types.Byte = 0xEA
	OpXORd8      types.Byte = 0xEE
	OpRST28      types.Byte = 0xEF
	OpLDHAa8     types.Byte = 0xF0
	OpPOPAF      types.Byte = 0xF1
	OpLDAC       types.Byte = 0xF2
	OpDI         types.Byte = 0xF3
	OpPUSHAF     types.Byte = 0xF5
	OpORd8       types.Byte = 0xF6
	OpRST30      types.Byte = 0xF7
	OpLDHLSPr8   types.Byte = 0xF8
	OpLDSPHL     types.Byte = 0xF9
	OpLDAa16     types.Byte = 0xFA
	OpEI         types.Byte = 0xFB
	OpCPd8       types.Byte = 0xFE
	OpRST38      types.Byte = 0xFF
)
