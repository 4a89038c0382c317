package sqlinline

const QInsertSettledHead = `--sql 4ceb455e-2300-41b7-87d4-5115049c766e
insert into settled_heads(id, campaign_id, total_amount, donation_count, settlement_ref, created_at, closed_at, settled_at)
values ($1::text, $2::text, $3::bigint, $4::bigint, $5::text, $6::timestamptz, $7::timestamptz, $8::timestamptz)
on conflict (id) do nothing;
`

const QInsertArchivedDonation = `--sql 20f0df99-56ce-4586-926b-ec8df1aefc15
insert into archived_donations(id, head_id, campaign_id, donor_address, donor_name, donor_country, amount, created_at)
values ($1::text, $2::text, $3::text, $4::text, $5::text, $6::text, $7::bigint, $8::timestamptz)
on conflict (id) do nothing;
`

const QListSettledHeads = `--sql a53684bf-0c08-440b-9df4-412d7c4ec99b
select id, campaign_id, total_amount, donation_count, settlement_ref, created_at, closed_at, settled_at
from settled_heads
where campaign_id = $1::text
order by settled_at desc
limit $2::int;
`
