package types

// HardwareAddress is the address of a memory mapped hardware
// register, found between 0xFF00 - 0xFF7F and at 0xFFFF.
type HardwareAddress = uint16

const (
	// P1 selects the joypad button group and reports
	// which of the selected buttons are held (active low).
	P1 HardwareAddress = 0xFF00
	// SB holds the byte being shifted out of the serial port.
	SB HardwareAddress = 0xFF01
	// SC controls serial transfers.
	SC HardwareAddress = 0xFF02
	// DIV exposes the upper 8 bits of the 16-bit system
	// divider. Any write resets the whole divider to 0.
	DIV HardwareAddress = 0xFF04
	// TIMA is the timer counter. It increments on every falling
	// edge of the divider bit selected by TAC, and on overflow is
	// reloaded from TMA and requests the timer interrupt.
	TIMA HardwareAddress = 0xFF05
	// TMA is the value TIMA is reloaded with on overflow.
	TMA HardwareAddress = 0xFF06
	// TAC enables the timer (bit 2) and selects its clock (bits 0-1).
	//
	//	00 - 4096 Hz   (1024 cycles)
	//	01 - 262144 Hz (16 cycles)
	//	10 - 65536 Hz  (64 cycles)
	//	11 - 16384 Hz  (256 cycles)
	TAC HardwareAddress = 0xFF07
	// IF holds the requested interrupts.
	//
	//	Bit 0: V-Blank  (INT 40h)
	//	Bit 1: LCD STAT (INT 48h)
	//	Bit 2: Timer    (INT 50h)
	//	Bit 3: Serial   (INT 58h)
	//	Bit 4: Joypad   (INT 60h)
	IF HardwareAddress = 0xFF0F
	// LCDC is the LCD control register. Bit 7 turns the display on.
	LCDC HardwareAddress = 0xFF40
	// STAT reports the current LCD mode and the LY=LYC coincidence,
	// and selects which of them raise the STAT interrupt.
	STAT HardwareAddress = 0xFF41
	// LY is the scanline currently being drawn (0 - 153).
	LY HardwareAddress = 0xFF44
	// LYC is compared against LY to set the coincidence flag.
	LYC HardwareAddress = 0xFF45
	// DMA starts a transfer of 160 bytes from (value << 8) into OAM.
	DMA HardwareAddress = 0xFF46
	// BDIS unmaps the boot ROM once written with a non-zero value.
	BDIS HardwareAddress = 0xFF50
	// IE holds the enabled interrupts, laid out the same as IF.
	IE HardwareAddress = 0xFFFF
)
