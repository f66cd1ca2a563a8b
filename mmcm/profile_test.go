package mmcm_test

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/clklab/drpsim/mmcm"
)

func validProfile() mmcm.ClockProfile {
	return mmcm.ClockProfile{
		FeedbackMultiply: 10,
		Bandwidth:        mmcm.BandwidthHigh,
		InputDivide:      1,
		OutputDivide:     10,
		OutputDuty:       50000,
	}
}

var _ = Describe("BuildUpdates", func() {
	It("should emit the fixed-length update sequence", func() {
		updates, err := mmcm.BuildUpdates(validProfile())
		Expect(err).NotTo(HaveOccurred())
		Expect(updates).To(HaveLen(mmcm.UpdatesPerProfile))
	})

	It("should visit the registers in the hardware order", func() {
		updates, err := mmcm.BuildUpdates(validProfile())
		Expect(err).NotTo(HaveOccurred())

		wantAddrs := []uint8{
			mmcm.RegPower,
			mmcm.RegClkOut0Reg1, mmcm.RegClkOut0Reg2,
			mmcm.RegDivClk,
			mmcm.RegClkFBReg1, mmcm.RegClkFBReg2,
			mmcm.RegLock1, mmcm.RegLock2, mmcm.RegLock3,
			mmcm.RegFilter1, mmcm.RegFilter2,
		}
		for i, u := range updates {
			Expect(u.Addr).To(Equal(wantAddrs[i]), "update %d", i)
		}
	})

	It("should never let a value overlap its preserve mask", func() {
		profiles := []mmcm.ClockProfile{
			validProfile(),
			{FeedbackMultiply: 64, Bandwidth: mmcm.BandwidthLow, InputDivide: 128,
				OutputDivide: 128, OutputPhase: -360000, OutputDuty: 99999},
			{FeedbackMultiply: 1, Bandwidth: mmcm.BandwidthHigh, InputDivide: 1,
				OutputDivide: 1, OutputPhase: 360000, OutputDuty: 1},
		}
		for _, p := range profiles {
			updates, err := mmcm.BuildUpdates(p)
			Expect(err).NotTo(HaveOccurred())
			for _, u := range updates {
				Expect(u.Value & u.Mask).To(BeZero(),
					"register 0x%02X: value 0x%04X mask 0x%04X", u.Addr, u.Value, u.Mask)
			}
		}
	})

	It("should produce the expected words for the 1:1 profile", func() {
		updates, err := mmcm.BuildUpdates(validProfile())
		Expect(err).NotTo(HaveOccurred())

		byAddr := map[uint8]mmcm.RegisterUpdate{}
		for _, u := range updates {
			byAddr[u.Addr] = u
		}

		Expect(byAddr[mmcm.RegPower].Value).To(Equal(uint16(0xFFFF)))
		// divide-by-10, 50% duty: high 5, low 5
		Expect(byAddr[mmcm.RegClkOut0Reg1].Value).To(Equal(uint16(0x0145)))
		Expect(byAddr[mmcm.RegClkOut0Reg2].Value).To(Equal(uint16(0x0000)))
		// input divide 1: bypassed
		Expect(byAddr[mmcm.RegDivClk].Value).To(Equal(uint16(0x1041)))
		// feedback multiply 10: high 5, low 5
		Expect(byAddr[mmcm.RegClkFBReg1].Value).To(Equal(uint16(0x0145)))
		Expect(byAddr[mmcm.RegClkFBReg2].Value).To(Equal(uint16(0x0000)))
		// lock settings for M=10
		Expect(byAddr[mmcm.RegLock1].Value).To(Equal(uint16(0x03E8)))
		Expect(byAddr[mmcm.RegLock2].Value).To(Equal(uint16(0x7001)))
		Expect(byAddr[mmcm.RegLock3].Value).To(Equal(uint16(0x73E9)))
	})

	It("should report invalid parameters at build time", func() {
		p := validProfile()
		p.OutputDuty = 0
		_, err := mmcm.BuildUpdates(p)
		Expect(err).To(HaveOccurred())

		p = validProfile()
		p.OutputPhase = 360001
		_, err = mmcm.BuildUpdates(p)
		Expect(err).To(HaveOccurred())

		p = validProfile()
		p.FeedbackMultiply = 65
		_, err = mmcm.BuildUpdates(p)
		Expect(err).To(HaveOccurred())

		p = validProfile()
		p.InputDivide = 0
		_, err = mmcm.BuildUpdates(p)
		Expect(err).To(HaveOccurred())
	})

	It("should build the same sequence every time", func() {
		a, err := mmcm.BuildUpdates(validProfile())
		Expect(err).NotTo(HaveOccurred())
		b, err := mmcm.BuildUpdates(validProfile())
		Expect(err).NotTo(HaveOccurred())
		Expect(a).To(Equal(b))
	})
})

var _ = Describe("RegisterUpdate.Apply", func() {
	It("should preserve masked bits and impose the rest", func() {
		u := mmcm.RegisterUpdate{Addr: mmcm.RegLock1, Mask: 0xFC00, Value: 0x03E8}
		Expect(u.Apply(0x0000)).To(Equal(uint16(0x03E8)))
		Expect(u.Apply(0xFFFF)).To(Equal(uint16(0xFC00 | 0x03E8)))
	})

	It("should hold the masking contract for arbitrary register contents", func() {
		updates, err := mmcm.BuildUpdates(validProfile())
		Expect(err).NotTo(HaveOccurred())

		rng := rand.New(rand.NewSource(42))
		for i := 0; i < 1000; i++ {
			old := uint16(rng.Intn(0x10000))
			for _, u := range updates {
				got := u.Apply(old)
				Expect(got & u.Mask).To(Equal(old&u.Mask),
					"register 0x%02X must preserve masked bits", u.Addr)
				Expect(got &^ u.Mask).To(Equal(u.Value),
					"register 0x%02X must impose the new bits", u.Addr)
			}
		}
	})
})

var _ = Describe("BuildROM", func() {
	var profiles []mmcm.ClockProfile

	BeforeEach(func() {
		config := mmcm.DefaultProfileConfig()
		var err error
		profiles, err = config.ClockProfiles()
		Expect(err).NotTo(HaveOccurred())
	})

	It("should hold one sequence per profile", func() {
		rom, err := mmcm.BuildROM(profiles)
		Expect(err).NotTo(HaveOccurred())
		Expect(rom.NumProfiles()).To(Equal(4))
		Expect(rom.ProfileLen()).To(Equal(mmcm.UpdatesPerProfile))
	})

	It("should index flat positions by selector and sequence position", func() {
		rom, err := mmcm.BuildROM(profiles)
		Expect(err).NotTo(HaveOccurred())

		for sel := 0; sel < rom.NumProfiles(); sel++ {
			seq := rom.Profile(sel)
			for pos, u := range seq {
				Expect(rom.At(sel*rom.ProfileLen() + pos)).To(Equal(u))
			}
		}
	})

	It("should agree with BuildUpdates per profile", func() {
		rom, err := mmcm.BuildROM(profiles)
		Expect(err).NotTo(HaveOccurred())

		for sel, p := range profiles {
			want, err := mmcm.BuildUpdates(p)
			Expect(err).NotTo(HaveOccurred())
			Expect(rom.Profile(sel)).To(Equal(want))
		}
	})

	It("should accept one profile", func() {
		rom, err := mmcm.BuildROM(profiles[:1])
		Expect(err).NotTo(HaveOccurred())
		Expect(rom.NumProfiles()).To(Equal(1))
	})

	It("should reject an empty profile list", func() {
		_, err := mmcm.BuildROM(nil)
		Expect(err).To(HaveOccurred())
	})

	It("should reject more profiles than the selector can address", func() {
		five := append(append([]mmcm.ClockProfile{}, profiles...), profiles[0])
		_, err := mmcm.BuildROM(five)
		Expect(err).To(HaveOccurred())
	})

	It("should refuse a table containing an invalid profile", func() {
		bad := append([]mmcm.ClockProfile{}, profiles...)
		bad[2].OutputDuty = 100000
		_, err := mmcm.BuildROM(bad)
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("profile 2"))
	})
})
